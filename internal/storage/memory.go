package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/mvaldes/fotoalbum/internal/domain"
)

// MemoryStorage is an in-memory ObjectStorage used by tests and local
// experiments. It keeps insertion order for List so enumeration is
// deterministic, and exposes per-operation error hooks for fault injection.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string
	keys    []string

	// PresignBase is the URL prefix returned by PresignPut, typically an
	// httptest server in tests.
	PresignBase string

	// PublicBase is the URL prefix returned by PublicURL.
	PublicBase string

	// Error hooks. When set, the corresponding operation fails with the
	// given error.
	GetErr     error
	PutErr     error
	ListErr    error
	PresignErr error
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

// SetObject seeds an object without going through Put.
func (s *MemoryStorage) SetObject(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(key, data, "")
}

func (s *MemoryStorage) store(key string, data []byte, contentType string) {
	if _, ok := s.objects[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.objects[key] = data
	s.types[key] = contentType
}

// Get downloads an object.
func (s *MemoryStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", key, domain.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Put stores an object.
func (s *MemoryStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(key, data, contentType)
	return nil
}

// List returns all keys in insertion order.
func (s *MemoryStorage) List(ctx context.Context) ([]string, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys, nil
}

// Delete removes an object.
func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return nil
	}
	delete(s.objects, key)
	delete(s.types, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Exists checks if an object exists.
func (s *MemoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// PresignPut returns PresignBase/<key> with the expiry encoded the way the
// real backends do.
func (s *MemoryStorage) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	if s.PresignErr != nil {
		return "", s.PresignErr
	}
	base := s.PresignBase
	if base == "" {
		base = "https://memory.invalid"
	}
	return fmt.Sprintf("%s/%s?X-Amz-Expires=%d", base, url.PathEscape(key), int(ttl.Seconds())), nil
}

// PublicURL returns PublicBase/<key>.
func (s *MemoryStorage) PublicURL(key string) string {
	base := s.PublicBase
	if base == "" {
		base = "https://memory.invalid"
	}
	return fmt.Sprintf("%s/%s", base, key)
}

// EnsureBucket is a no-op.
func (s *MemoryStorage) EnsureBucket(ctx context.Context) error {
	return nil
}

// Data returns a copy of the raw bytes stored at key, for assertions.
func (s *MemoryStorage) Data(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mvaldes/fotoalbum/internal/domain"
	"github.com/mvaldes/fotoalbum/internal/logger"
	"github.com/mvaldes/fotoalbum/internal/storage"
)

// CounterService owns the shared like-counter document. Every mutation is a
// full read-modify-write of one JSON blob: the backing store has no atomic
// increment or conditional write, so this is the only way to update it.
//
// The mutex serializes increments within this process. It does NOT protect
// against a second process racing the same document; two overlapping
// read-modify-write cycles across processes can still lose an update. That
// is an accepted tradeoff at small-gallery contention, not something this
// layer tries to fix.
type CounterService struct {
	storage storage.ObjectStorage
	docKey  string
	logger  *logger.Logger

	mu sync.Mutex
}

// NewCounterService creates a new counter service. docKey is the well-known
// storage key of the counter document.
func NewCounterService(store storage.ObjectStorage, docKey string, log *logger.Logger) *CounterService {
	if docKey == "" {
		docKey = domain.DefaultCountsKey
	}
	return &CounterService{
		storage: store,
		docKey:  docKey,
		logger:  log,
	}
}

// DocKey returns the storage key of the counter document.
func (s *CounterService) DocKey() string {
	return s.docKey
}

// IncrementLike adds one like for key and returns the new count. The key is
// canonicalized to its basename first, so "folder/a.jpg" and "a.jpg" share a
// counter. The document is lazily created on the first like.
func (s *CounterService) IncrementLike(ctx context.Context, key string) (int, error) {
	name := domain.Basename(key)
	if name == "" {
		return 0, &domain.ValidationError{Field: "filename"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counts, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	counts[name]++

	if err := s.save(ctx, counts); err != nil {
		return 0, err
	}

	s.logger.WithFields(logger.Fields{
		"filename":        name,
		logger.FieldCount: counts[name],
	}).Debug("Like recorded")

	return counts[name], nil
}

// Counts returns the current counter document. An absent document reads as
// an empty mapping.
func (s *CounterService) Counts(ctx context.Context) (domain.LikeCounts, error) {
	return s.load(ctx)
}

// load fetches and decodes the counter document. NotFound is a normal
// branch: the document does not exist until the first like is recorded.
func (s *CounterService) load(ctx context.Context) (domain.LikeCounts, error) {
	body, err := s.storage.Get(ctx, s.docKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LikeCounts{}, nil
		}
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, domain.WrapStore(fmt.Errorf("read %s: %w", s.docKey, err))
	}

	return domain.DecodeLikeCounts(data), nil
}

// save overwrites the counter document with the full mapping.
func (s *CounterService) save(ctx context.Context, counts domain.LikeCounts) error {
	data, err := counts.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.docKey, err)
	}
	return s.storage.Put(ctx, s.docKey, bytes.NewReader(data), int64(len(data)), "application/json")
}

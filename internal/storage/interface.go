package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStorage defines the interface for object storage operations.
// Implementations translate backend errors into the domain taxonomy:
// a missing object surfaces as domain.ErrNotFound, any other backend
// failure as domain.ErrStoreUnavailable.
type ObjectStorage interface {
	// Get downloads an object. Returns domain.ErrNotFound if the key
	// does not exist.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Put uploads an object, overwriting any existing object at key.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// List returns all object keys in the bucket. Order is whatever the
	// backend returns; callers must not assume it is chronological.
	List(ctx context.Context) ([]string, error)

	// Delete deletes an object.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists.
	Exists(ctx context.Context, key string) (bool, error)

	// PresignPut mints a time-boxed URL authorizing a single HTTP PUT of
	// a body with the given content type to key. No object is created
	// until the client performs the PUT.
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)

	// PublicURL returns the deterministic public URL for an object so
	// clients can construct it without an extra round trip.
	PublicURL(key string) string

	// EnsureBucket creates the bucket if it doesn't exist.
	EnsureBucket(ctx context.Context) error
}

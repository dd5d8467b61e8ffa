package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the storage boundary. Services and handlers test these
// with errors.Is; no raw backend error type crosses the service layer.
var (
	// ErrNotFound indicates the requested object does not exist. For the
	// counter document this is a normal branch, not a failure.
	ErrNotFound = errors.New("object not found")

	// ErrStoreUnavailable indicates a transient backend failure. Safe to
	// retry at the caller's discretion.
	ErrStoreUnavailable = errors.New("object store unavailable")
)

// WrapStore marks err as a transient store failure while keeping the cause
// visible in the message and the chain.
func WrapStore(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// ValidationError reports a missing or malformed request field. Always a
// client error; never retried.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid field: %s", e.Field)
}

// ConfigurationError reports missing required configuration. Fatal at
// startup; the server must refuse traffic rather than fail per request.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

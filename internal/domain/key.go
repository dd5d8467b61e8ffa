package domain

import (
	"fmt"
	"strings"
	"time"
)

// Basename returns the canonical counter identity for a stored object key:
// the final "/"-delimited segment. Keys in the bucket may carry path-style
// prefixes, but the like-counter document and the gallery always address
// images by basename. Idempotent.
func Basename(key string) string {
	if idx := strings.LastIndex(key, "/"); idx != -1 {
		return key[idx+1:]
	}
	return key
}

// ObjectKey derives the storage key for an uploaded file. Keys are
// timestamp-prefixed so repeated uploads of the same file name produce
// distinct objects while sharing one basename-keyed like counter.
func ObjectKey(fileName string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), Basename(fileName))
}

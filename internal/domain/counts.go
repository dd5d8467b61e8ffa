package domain

import "encoding/json"

// DefaultCountsKey is the well-known storage key of the shared like-counter
// document.
const DefaultCountsKey = "likes.json"

// LikeCounts is the shared counter document: a flat mapping from image
// basename to a non-negative like count. Exactly one instance exists per
// deployment, persisted as a single JSON blob alongside the images.
type LikeCounts map[string]int

// DecodeLikeCounts parses a serialized counter document. Empty or corrupt
// content decodes to an empty mapping rather than an error: the document does
// not exist until the first like, and availability wins over strict
// integrity for a like counter.
func DecodeLikeCounts(data []byte) LikeCounts {
	counts := LikeCounts{}
	if len(data) == 0 {
		return counts
	}
	if err := json.Unmarshal(data, &counts); err != nil {
		return LikeCounts{}
	}
	return counts
}

// Encode serializes the document. Indented so the persisted blob stays
// human-inspectable.
func (c LikeCounts) Encode() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

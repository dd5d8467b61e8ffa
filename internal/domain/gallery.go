package domain

// GalleryEntry is a read-only projection of one stored image: its public
// URL, canonical basename, and current like count. Recomputed on every
// gallery load; never persisted.
type GalleryEntry struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Likes    int    `json:"likes"`
}

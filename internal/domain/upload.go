package domain

// UploadFile is one file in an upload batch.
type UploadFile struct {
	Name        string
	ContentType string
	Body        []byte
}

// UploadResult is the per-file outcome of a batch upload. Files are
// attempted independently; a batch is never all-or-nothing.
type UploadResult struct {
	Name string `json:"name"`
	Key  string `json:"key,omitempty"`
	URL  string `json:"url,omitempty"`
	Err  error  `json:"-"`
}

// OK reports whether the file was stored.
func (r UploadResult) OK() bool {
	return r.Err == nil
}

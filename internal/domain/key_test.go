package domain

import (
	"testing"
	"time"
)

func TestBasename(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "plain name", key: "a.jpg", want: "a.jpg"},
		{name: "single prefix", key: "folder/a.jpg", want: "a.jpg"},
		{name: "nested prefix", key: "2024/06/folder/a.jpg", want: "a.jpg"},
		{name: "timestamp prefix stays", key: "1700000000-a.jpg", want: "1700000000-a.jpg"},
		{name: "trailing slash", key: "folder/", want: ""},
		{name: "empty", key: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Basename(tt.key)
			if got != tt.want {
				t.Errorf("Basename(%q) = %q, want %q", tt.key, got, tt.want)
			}

			// Canonicalization must be idempotent
			if again := Basename(got); again != got {
				t.Errorf("Basename not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	got := ObjectKey("photo.png", now)
	want := "1700000000000-photo.png"
	if got != want {
		t.Errorf("ObjectKey = %q, want %q", got, want)
	}

	// Path components in the client-supplied name must not survive into
	// the key.
	got = ObjectKey("../tmp/photo.png", now)
	if got != want {
		t.Errorf("ObjectKey with path = %q, want %q", got, want)
	}
}

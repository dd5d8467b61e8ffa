package storage

import "testing"

func newTestS3(t *testing.T, cfg *Config) *S3Storage {
	t.Helper()
	s, err := NewS3Storage(cfg)
	if err != nil {
		t.Fatalf("NewS3Storage: %v", err)
	}
	return s
}

func TestS3PublicURL(t *testing.T) {
	// Clients derive object URLs without a round trip, so the shape is a
	// contract: https://<bucket>.s3.<region>.amazonaws.com/<key>
	s := newTestS3(t, &Config{
		Region:    "eu-west-1",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "album",
	})

	got := s.PublicURL("1700-a.jpg")
	want := "https://album.s3.eu-west-1.amazonaws.com/1700-a.jpg"
	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}

func TestS3PublicURL_CustomEndpoint(t *testing.T) {
	s := newTestS3(t, &Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "test",
		SecretKey: "test",
		UseSSL:    false,
		Bucket:    "album",
	})

	got := s.PublicURL("a.jpg")
	want := "http://localhost:9000/album/a.jpg"
	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}

func TestS3PublicURL_ConfiguredPrefix(t *testing.T) {
	s := newTestS3(t, &Config{
		Region:    "eu-west-1",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "album",
		PublicURL: "https://cdn.example.com/",
	})

	got := s.PublicURL("a.jpg")
	want := "https://cdn.example.com/a.jpg"
	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}

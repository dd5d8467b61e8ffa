package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mvaldes/fotoalbum/internal/config"
	"github.com/mvaldes/fotoalbum/internal/domain"
	"github.com/mvaldes/fotoalbum/internal/logger"
	"github.com/mvaldes/fotoalbum/internal/service"
	"github.com/mvaldes/fotoalbum/internal/storage"
)

func newTestRouter(t *testing.T, store *storage.MemoryStorage) http.Handler {
	t.Helper()

	log := logger.New(&logger.Config{
		Level:       "error",
		Format:      "text",
		Output:      io.Discard,
		ServiceName: "test",
	})

	counter := service.NewCounterService(store, "likes.json", log)
	gallery := service.NewGalleryService(store, counter, log)
	upload := service.NewUploadService(store, log, &service.UploadConfig{
		TTL:     300 * time.Second,
		Workers: 2,
	})

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.CORS.AllowAllOrigins = true

	return SetupRouter(upload, counter, gallery, cfg)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var payload map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
		}
	}
	return w, payload
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStorage())

	w, payload := doJSON(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if payload["status"] != "ok" || payload["service"] != "fotoalbum" {
		t.Errorf("payload = %v", payload)
	}
}

func TestPresign(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStorage())

	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/uploads/presign",
		`{"fileName": "1700-x.png", "fileType": "image/png"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	url, _ := payload["url"].(string)
	if !strings.Contains(url, "1700-x.png") {
		t.Errorf("url = %q, want key in URL", url)
	}
}

func TestPresign_MissingFields(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStorage())

	tests := []struct {
		name string
		body string
	}{
		{name: "no fileName", body: `{"fileType": "image/png"}`},
		{name: "no fileType", body: `{"fileName": "x.png"}`},
		{name: "empty body", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, payload := doJSON(t, router, http.MethodPost, "/api/v1/uploads/presign", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if payload["error"] == "" {
				t.Error("expected error message")
			}
		})
	}
}

func TestLike(t *testing.T) {
	store := storage.NewMemoryStorage()
	router := newTestRouter(t, store)

	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/likes", `{"filename": "a.jpg"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if payload["count"] != float64(1) {
		t.Errorf("count = %v, want 1", payload["count"])
	}

	// Second like comes back as 2
	_, payload = doJSON(t, router, http.MethodPost, "/api/v1/likes", `{"filename": "a.jpg"}`)
	if payload["count"] != float64(2) {
		t.Errorf("count = %v, want 2", payload["count"])
	}

	// Document persisted at the well-known key
	data, ok := store.Data("likes.json")
	if !ok {
		t.Fatal("counter document missing")
	}
	counts := domain.DecodeLikeCounts(data)
	if counts["a.jpg"] != 2 {
		t.Errorf("persisted counts = %v", counts)
	}
}

func TestLike_MissingFilename(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStorage())

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/likes", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLike_BlankBasename(t *testing.T) {
	store := storage.NewMemoryStorage()
	router := newTestRouter(t, store)

	// A filename that canonicalizes to an empty basename is a client
	// error, not a store failure
	w, payload := doJSON(t, router, http.MethodPost, "/api/v1/likes", `{"filename": "folder/"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if payload["error"] == nil {
		t.Error("expected error message")
	}
	if _, ok := store.Data("likes.json"); ok {
		t.Error("counter document was written for an invalid filename")
	}
}

func TestLike_StoreFailure(t *testing.T) {
	store := storage.NewMemoryStorage()
	store.PutErr = domain.WrapStore(io.ErrUnexpectedEOF)
	router := newTestRouter(t, store)

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/likes", `{"filename": "a.jpg"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestListImages(t *testing.T) {
	store := storage.NewMemoryStorage()
	store.PublicBase = "https://album.s3.eu-west-1.amazonaws.com"
	store.SetObject("1700-a.jpg", []byte("img"))
	store.SetObject("dup/1700-a.jpg", []byte("img"))
	store.SetObject("likes.json", []byte(`{"1700-a.jpg": 3}`))
	router := newTestRouter(t, store)

	w, payload := doJSON(t, router, http.MethodGet, "/api/v1/images", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	urls, _ := payload["urls"].([]interface{})
	if len(urls) != 1 {
		t.Fatalf("urls = %v, want 1 deduplicated entry", urls)
	}
	if urls[0] != "https://album.s3.eu-west-1.amazonaws.com/1700-a.jpg" {
		t.Errorf("url = %v", urls[0])
	}

	images, _ := payload["images"].([]interface{})
	if len(images) != 1 {
		t.Fatalf("images = %v, want 1 entry", images)
	}
	entry, _ := images[0].(map[string]interface{})
	if entry["filename"] != "1700-a.jpg" || entry["likes"] != float64(3) {
		t.Errorf("entry = %v", entry)
	}
}

func TestListImages_StoreFailure(t *testing.T) {
	store := storage.NewMemoryStorage()
	store.ListErr = domain.WrapStore(io.ErrUnexpectedEOF)
	router := newTestRouter(t, store)

	w, payload := doJSON(t, router, http.MethodGet, "/api/v1/images", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if payload["error"] == "" {
		t.Error("expected error message")
	}
}

func TestGetLikes(t *testing.T) {
	store := storage.NewMemoryStorage()
	store.SetObject("likes.json", []byte(`{"a.jpg": 4}`))
	router := newTestRouter(t, store)

	w, payload := doJSON(t, router, http.MethodGet, "/api/v1/likes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if payload["a.jpg"] != float64(4) {
		t.Errorf("payload = %v", payload)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStorage())

	// Like and presign are POST-only
	w, _ := doJSON(t, router, http.MethodPut, "/api/v1/likes", `{"filename": "a.jpg"}`)
	if w.Code != http.StatusNotFound && w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 404 or 405", w.Code)
	}
}

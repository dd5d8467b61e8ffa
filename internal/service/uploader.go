package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	_ "golang.org/x/image/webp"

	"github.com/mvaldes/fotoalbum/internal/domain"
	"github.com/mvaldes/fotoalbum/internal/logger"
	"github.com/mvaldes/fotoalbum/internal/storage"
)

// UploadService issues upload credentials and drives direct-to-storage
// uploads. The service never proxies payload bytes on the request path:
// clients PUT directly to a presigned URL.
type UploadService struct {
	storage  storage.ObjectStorage
	client   *resty.Client
	logger   *logger.Logger
	ttl      time.Duration
	workers  int
	validate bool
	now      func() time.Time
}

// UploadConfig holds configuration for the upload service.
type UploadConfig struct {
	TTL            time.Duration // presigned URL lifetime
	Workers        int           // batch upload concurrency
	ValidateImages bool          // decode-check image payloads before upload
}

// NewUploadService creates a new upload service.
func NewUploadService(store storage.ObjectStorage, log *logger.Logger, cfg *UploadConfig) *UploadService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &UploadService{
		storage:  store,
		client:   resty.New(),
		logger:   log,
		ttl:      ttl,
		workers:  workers,
		validate: cfg.ValidateImages,
		now:      time.Now,
	}
}

// log returns a logger from context if available, otherwise the service's
// own logger, so context fields like batch_id attach to upload logs.
func (s *UploadService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// IssueUploadCredential mints a presigned PUT URL for one object key and
// content type. No object is created at issuance; the URL stops working
// after the configured TTL whether or not it was used.
func (s *UploadService) IssueUploadCredential(ctx context.Context, key, contentType string) (string, error) {
	if key == "" {
		return "", &domain.ValidationError{Field: "fileName"}
	}
	if contentType == "" {
		return "", &domain.ValidationError{Field: "fileType"}
	}

	url, err := s.storage.PresignPut(ctx, key, contentType, s.ttl)
	if err != nil {
		return "", err
	}

	s.log(ctx).WithFields(logger.Fields{
		"key":          key,
		"content_type": contentType,
		"ttl_seconds":  int(s.ttl.Seconds()),
	}).Debug("Issued upload credential")

	return url, nil
}

// UploadBatch uploads each file independently through a bounded worker pool
// and returns one result per file, in input order. A failing file never
// aborts the others; there is no automatic retry and no rollback, so a
// partially failed batch may leave orphaned objects with no counter entry.
func (s *UploadService) UploadBatch(ctx context.Context, files []domain.UploadFile) []domain.UploadResult {
	results := make([]domain.UploadResult, len(files))
	if len(files) == 0 {
		return results
	}

	workers := s.workers
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = s.uploadOne(ctx, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	s.log(ctx).WithFields(logger.Fields{
		logger.FieldCount: len(files),
		"failed":          failed,
	}).Info("Upload batch finished")

	return results
}

// uploadOne performs one independent upload attempt: derive a unique key,
// request a credential, and PUT the bytes straight to storage.
func (s *UploadService) uploadOne(ctx context.Context, file domain.UploadFile) domain.UploadResult {
	result := domain.UploadResult{Name: file.Name}

	if file.Name == "" {
		result.Err = &domain.ValidationError{Field: "name"}
		return result
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(file.Body)
	}

	if s.validate && strings.HasPrefix(contentType, "image/") {
		if _, _, err := image.DecodeConfig(bytes.NewReader(file.Body)); err != nil {
			result.Err = fmt.Errorf("%s is not a decodable image: %w", file.Name, err)
			return result
		}
	}

	key := domain.ObjectKey(file.Name, s.now())
	result.Key = key

	url, err := s.storage.PresignPut(ctx, key, contentType, s.ttl)
	if err != nil {
		result.Err = err
		return result
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(file.Body).
		Put(url)
	if err != nil {
		result.Err = domain.WrapStore(fmt.Errorf("upload %s: %w", key, err))
		return result
	}
	if !resp.IsSuccess() {
		result.Err = fmt.Errorf("upload %s: unexpected status %d", key, resp.StatusCode())
		return result
	}

	result.URL = s.storage.PublicURL(key)
	return result
}

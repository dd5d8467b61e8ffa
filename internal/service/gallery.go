package service

import (
	"context"

	"github.com/mvaldes/fotoalbum/internal/domain"
	"github.com/mvaldes/fotoalbum/internal/logger"
	"github.com/mvaldes/fotoalbum/internal/storage"
)

// GalleryService enumerates stored images and joins them with their like
// counts.
type GalleryService struct {
	storage storage.ObjectStorage
	counter *CounterService
	logger  *logger.Logger
}

// NewGalleryService creates a new gallery service.
func NewGalleryService(store storage.ObjectStorage, counter *CounterService, log *logger.Logger) *GalleryService {
	return &GalleryService{
		storage: store,
		counter: counter,
		logger:  log,
	}
}

// ListImages lists all stored images, deduplicated by basename. Keys with
// identical basenames should not occur given timestamp-prefixed keys, but
// when they do only the first key in enumeration order is kept. Enumeration
// order comes from the store and carries no chronology guarantee.
func (s *GalleryService) ListImages(ctx context.Context) ([]domain.GalleryEntry, error) {
	keys, err := s.storage.List(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.counter.Counts(ctx)
	if err != nil {
		// A broken counter read should not take the gallery down;
		// entries degrade to zero likes.
		s.logger.WithError(err).Warn("Failed to load like counts, serving gallery without them")
		counts = domain.LikeCounts{}
	}

	seen := make(map[string]bool, len(keys))
	entries := make([]domain.GalleryEntry, 0, len(keys))
	for _, key := range keys {
		if key == s.counter.DocKey() {
			continue
		}
		name := domain.Basename(key)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		entries = append(entries, domain.GalleryEntry{
			URL:      s.storage.PublicURL(key),
			Filename: name,
			Likes:    counts[name],
		})
	}

	return entries, nil
}

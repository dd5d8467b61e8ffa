package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvaldes/fotoalbum/internal/service"
)

// GalleryHandler handles gallery listing endpoints.
type GalleryHandler struct {
	galleryService *service.GalleryService
}

// NewGalleryHandler creates a new gallery handler.
func NewGalleryHandler(galleryService *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
	}
}

// List handles GET /api/v1/images. The flat "urls" field is what the
// original gallery page consumes; "images" adds filenames and like counts
// so clients can skip a second round trip.
func (h *GalleryHandler) List(c *gin.Context) {
	entries, err := h.galleryService.ListImages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list images",
		})
		return
	}

	urls := make([]string, 0, len(entries))
	for _, entry := range entries {
		urls = append(urls, entry.URL)
	}

	c.JSON(http.StatusOK, gin.H{
		"urls":   urls,
		"images": entries,
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvaldes/fotoalbum/internal/domain"
	"github.com/mvaldes/fotoalbum/internal/service"
)

// LikeHandler handles like-counter endpoints.
type LikeHandler struct {
	counterService *service.CounterService
}

// NewLikeHandler creates a new like handler.
func NewLikeHandler(counterService *service.CounterService) *LikeHandler {
	return &LikeHandler{
		counterService: counterService,
	}
}

// LikeRequest is the body of POST /api/v1/likes.
type LikeRequest struct {
	Filename string `json:"filename"`
}

// Like handles POST /api/v1/likes. Returns the post-increment count, or an
// explicit failure; there is no ambiguous partial-success state.
func (h *LikeHandler) Like(c *gin.Context) {
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	if req.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "filename is required",
		})
		return
	}

	count, err := h.counterService.IncrementLike(c.Request.Context(), req.Filename)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to record like",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": count,
	})
}

// Counts handles GET /api/v1/likes: the full counter document, the same
// flat mapping persisted in storage.
func (h *LikeHandler) Counts(c *gin.Context) {
	counts, err := h.counterService.Counts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load like counts",
		})
		return
	}

	c.JSON(http.StatusOK, counts)
}

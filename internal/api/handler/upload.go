package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvaldes/fotoalbum/internal/domain"
	"github.com/mvaldes/fotoalbum/internal/service"
)

// UploadHandler handles upload credential endpoints.
type UploadHandler struct {
	uploadService *service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// PresignRequest is the body of POST /api/v1/uploads/presign.
type PresignRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// Presign handles POST /api/v1/uploads/presign. It returns a short-lived
// URL the client PUTs the file to directly; the payload never passes
// through this service.
func (h *UploadHandler) Presign(c *gin.Context) {
	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	if req.FileName == "" || req.FileType == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "fileName and fileType are required",
		})
		return
	}

	url, err := h.uploadService.IssueUploadCredential(c.Request.Context(), req.FileName, req.FileType)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate upload URL",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url": url,
	})
}

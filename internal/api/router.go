package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mvaldes/fotoalbum/internal/api/handler"
	"github.com/mvaldes/fotoalbum/internal/api/middleware"
	"github.com/mvaldes/fotoalbum/internal/config"
	"github.com/mvaldes/fotoalbum/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	uploadService *service.UploadService,
	counterService *service.CounterService,
	galleryService *service.GalleryService,
	cfg *config.Config,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	uploadHandler := handler.NewUploadHandler(uploadService)
	likeHandler := handler.NewLikeHandler(counterService)
	galleryHandler := handler.NewGalleryHandler(galleryService)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Upload credentials
		v1.POST("/uploads/presign", uploadHandler.Presign)

		// Likes
		v1.POST("/likes", likeHandler.Like)
		v1.GET("/likes", likeHandler.Counts)

		// Gallery
		v1.GET("/images", galleryHandler.List)
	}

	return r
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvaldes/fotoalbum/internal/api"
	"github.com/mvaldes/fotoalbum/internal/config"
	"github.com/mvaldes/fotoalbum/internal/logger"
	"github.com/mvaldes/fotoalbum/internal/service"
	"github.com/mvaldes/fotoalbum/internal/storage"
)

func main() {
	// Initialize logger first
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Missing bucket/region/credentials must stop the server here, not
	// fail per request later.
	if err := cfg.Validate(); err != nil {
		appLogger.WithError(err).Fatal("Invalid configuration")
	}

	// Initialize storage (supports AWS S3, MinIO, S3-compatible)
	objectStorage, err := storage.NewStorage(&storage.Config{
		Driver:    cfg.Storage.Driver,
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}

	// Ensure bucket exists
	ctx := context.Background()
	if err := objectStorage.EnsureBucket(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
	}

	// Initialize services
	counterService := service.NewCounterService(objectStorage, cfg.Storage.CountsKey, appLogger)
	galleryService := service.NewGalleryService(objectStorage, counterService, appLogger)
	uploadService := service.NewUploadService(objectStorage, appLogger, &service.UploadConfig{
		TTL:            cfg.Upload.TTL(),
		Workers:        cfg.Upload.Workers,
		ValidateImages: cfg.Upload.ValidateImages,
	})

	// Setup router
	router := api.SetupRouter(uploadService, counterService, galleryService, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}

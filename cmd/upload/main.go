package main

import (
	"context"
	"flag"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mvaldes/fotoalbum/internal/config"
	"github.com/mvaldes/fotoalbum/internal/domain"
	"github.com/mvaldes/fotoalbum/internal/logger"
	"github.com/mvaldes/fotoalbum/internal/service"
	"github.com/mvaldes/fotoalbum/internal/storage"
)

// Batch uploader: pushes every image in a directory to the album bucket
// through the same presign-then-PUT path browsers use.
func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "fotoalbum-upload",
	})
	logger.SetDefaultLogger(appLogger)

	dir := flag.String("dir", ".", "Directory containing files to upload")
	configPath := flag.String("config", "", "Path to config file")
	workers := flag.Int("workers", 0, "Upload concurrency (0 uses the configured value)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		appLogger.WithError(err).Fatal("Invalid configuration")
	}
	if *workers > 0 {
		cfg.Upload.Workers = *workers
	}

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

	files, err := collectFiles(*dir)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to read upload directory")
	}
	if len(files) == 0 {
		appLogger.WithField("dir", *dir).Warn("No files to upload")
		return
	}

	uploadService := service.NewUploadService(objectStorage, appLogger, &service.UploadConfig{
		TTL:            cfg.Upload.TTL(),
		Workers:        cfg.Upload.Workers,
		ValidateImages: cfg.Upload.ValidateImages,
	})

	ctx := logger.SetBatchID(context.Background(), uuid.New().String())

	results := uploadService.UploadBatch(ctx, files)

	failed := 0
	for _, r := range results {
		if r.OK() {
			appLogger.WithFields(logger.Fields{
				"name": r.Name,
				"url":  r.URL,
			}).Info("Uploaded")
		} else {
			failed++
			appLogger.WithField("name", r.Name).WithError(r.Err).Error("Upload failed")
		}
	}

	if failed > 0 {
		appLogger.WithFields(logger.Fields{
			logger.FieldCount: len(results),
			"failed":          failed,
		}).Error("Batch finished with failures")
		os.Exit(1)
	}
	appLogger.WithField(logger.FieldCount, len(results)).Info("Batch finished")
}

// collectFiles reads every regular file in dir into an upload batch.
// Content types come from the file extension; unknown extensions are left
// empty and sniffed from the bytes at upload time.
func collectFiles(dir string) ([]domain.UploadFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []domain.UploadFile
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		body, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		files = append(files, domain.UploadFile{
			Name:        entry.Name(),
			ContentType: mime.TypeByExtension(filepath.Ext(entry.Name())),
			Body:        body,
		})
	}

	return files, nil
}

package storage

import "strings"

// Driver names accepted in configuration.
const (
	DriverS3    = "s3"
	DriverMinIO = "minio"
)

// NewStorage creates an ObjectStorage instance based on the configuration.
// An empty driver is auto-detected from the endpoint: AWS endpoints (or no
// endpoint at all) use the AWS SDK client, anything else uses the MinIO
// client.
func NewStorage(cfg *Config) (ObjectStorage, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = detectDriver(cfg.Endpoint)
	}

	if driver == DriverMinIO {
		return NewMinIOStorage(cfg)
	}
	return NewS3Storage(cfg)
}

// detectDriver picks a client implementation from the endpoint shape.
func detectDriver(endpoint string) string {
	endpoint = strings.ToLower(endpoint)

	switch {
	case endpoint == "":
		return DriverS3
	case strings.Contains(endpoint, "amazonaws.com"):
		return DriverS3
	default:
		return DriverMinIO
	}
}

package storage

import (
	"context"
	"io"
)

// Storage is the minimal interface studio media needs from a backend:
// put a file, delete a file, resolve its public URL.
type Storage interface {
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}

// Config holds settings for all storage backends
type Config struct {
	Backend string // "s3" or "local"

	S3Region    string
	S3Endpoint  string // non-empty for MinIO / S3-compatible stores
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string

	LocalPath string
	BaseURL   string
}

// New creates the storage backend selected by cfg.Backend.
func New(cfg Config) (Storage, error) {
	if cfg.Backend == "s3" {
		return NewS3Storage(cfg)
	}
	return NewLocalStorage(cfg.LocalPath, cfg.BaseURL)
}

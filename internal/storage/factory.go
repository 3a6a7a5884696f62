package storage

import (
	"context"
	"fmt"

	"mediaforge/internal/adapters/storage/gcs"
	"mediaforge/internal/adapters/storage/localfs"
	"mediaforge/internal/adapters/storage/miniostore"
	"mediaforge/internal/adapters/storage/s3store"
	"mediaforge/internal/config"
)

// NewProvider constructs the configured storage backend. The returned
// provider is the only handle the rest of the service gets; credentials
// never leave the adapters.
func NewProvider(ctx context.Context, cfg config.Storage) (Provider, error) {
	switch cfg.Provider {
	case "localfs":
		return localfs.New(cfg.LocalRoot, cfg.Bucket, cfg.PublicBaseURL), nil

	case "minio":
		return miniostore.New(miniostore.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Secure:    cfg.MinioSecure,
			Bucket:    cfg.Bucket,
		})

	case "s3":
		return s3store.New(ctx, s3store.Config{
			Region:       cfg.S3Region,
			Bucket:       cfg.Bucket,
			UsePathStyle: cfg.S3UsePathStyle,
		})

	case "gcs":
		return gcs.New(ctx, gcs.Config{
			ProjectID: cfg.GCPProjectID,
			Bucket:    cfg.Bucket,
		})

	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}

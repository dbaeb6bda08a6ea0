package bootstrap

import (
	"context"
	"fmt"

	"github.com/refurnish/refurnish-backend/config"
	"github.com/refurnish/refurnish-backend/internal/uploads"
)

// OpenStorage selects the upload backend from config.
func OpenStorage(ctx context.Context, cfg *config.Config) (uploads.Storage, error) {
	switch cfg.Storage.Driver {
	case "local":
		return uploads.NewLocalStorage(cfg.Upload.Dir)
	case "s3":
		return uploads.NewS3Storage(ctx, uploads.S3Options{
			Bucket:        cfg.Storage.S3Bucket,
			Region:        cfg.Storage.S3Region,
			AccessKey:     cfg.Storage.S3AccessKey,
			SecretKey:     cfg.Storage.S3SecretKey,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

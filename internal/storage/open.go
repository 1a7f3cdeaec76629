package storage

import (
	"context"
	"fmt"

	"coursehub/internal/config"

	"github.com/rs/zerolog"
)

// Open builds the backend selected by cfg.StorageBackend. The returned close
// function releases backend resources and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Backend, func(), error) {
	noop := func() {}
	switch cfg.StorageBackend {
	case "", "file":
		b, err := NewFileBackend(cfg.DataDir)
		if err != nil {
			return nil, noop, err
		}
		logger.Info().Str("dir", cfg.DataDir).Msg("Using file document backend")
		return b, noop, nil
	case "memory":
		logger.Warn().Msg("Using in-memory document backend, data is lost on exit")
		return NewMemoryBackend(), noop, nil
	case "postgres":
		if cfg.DBConnectionString == "" {
			return nil, noop, fmt.Errorf("DB_CONNECTION_STRING is required for the postgres backend")
		}
		b, err := NewPostgresBackend(ctx, cfg.DBConnectionString)
		if err != nil {
			return nil, noop, err
		}
		logger.Info().Msg("Using postgres document backend")
		return b, b.Close, nil
	case "sqlite":
		b, err := NewSQLiteBackend(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("Using sqlite document backend")
		return b, b.Close, nil
	case "s3":
		b, err := NewS3Backend(ctx, S3Options{
			URL:       cfg.S3URL,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			return nil, noop, err
		}
		logger.Info().Str("bucket", cfg.S3Bucket).Msg("Using S3 document backend")
		return b, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

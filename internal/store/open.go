package store

import (
	"fmt"

	"hbnb/internal/config"
	"hbnb/internal/logging"
)

// Open builds the backend named by cfg.Backend.
func Open(cfg config.StorageConfig) (Backend, error) {
	timeout := cfg.GetStorageTimeout()

	var (
		b   Backend
		err error
	)
	switch cfg.Backend {
	case "", "file":
		b = NewFileBackend(cfg.Path)
	case "memory":
		b = NewMemoryBackend()
	case "sqlite":
		b, err = OpenSQLite(cfg.SQLitePath, cfg.DocumentName(), timeout)
	case "postgres":
		b, err = OpenPostgres(cfg.PostgresDSN, cfg.DocumentName(), timeout)
	case "s3":
		b, err = OpenS3(cfg.S3, cfg.DocumentName(), timeout)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: %v)", cfg.Backend, config.ValidBackends)
	}
	if err != nil {
		logging.StorageError("open %s backend: %v", cfg.Backend, err)
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	logging.Storage("using backend %s", b.Name())
	return b, nil
}

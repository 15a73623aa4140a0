package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/config"
)

// New creates the storage system selected by the configured driver.
func New(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (System, error) {
	switch cfg.Driver {
	case config.DriverS3:
		return NewS3(ctx, cfg, logger)
	case config.DriverFilesystem:
		return NewFilesystem(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

package main

import (
	"log/slog"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/config"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/middleware"
)

// buildMiddleware creates the middleware stack with slash trimming, request
// logging, and CORS.
func buildMiddleware(cfg *config.Config, logger *slog.Logger) middleware.System {
	sys := middleware.New()
	sys.Use(middleware.TrimSlash())
	sys.Use(middleware.Logger(logger))
	sys.Use(middleware.CORS(&cfg.CORS))
	return sys
}

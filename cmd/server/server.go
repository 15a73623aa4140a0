package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/config"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/database"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/files"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/lifecycle"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/pipeline"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/server"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/storage"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	config    *config.Config
	logger    *slog.Logger
	lifecycle *lifecycle.Coordinator
	db        *sql.DB
	storage   storage.System
	pipeline  pipeline.System
	http      server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if err := database.Migrate(&cfg.Database, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	lc := lifecycle.New()

	store, err := storage.New(lc.Context(), &cfg.Storage, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}

	pipe := pipeline.New(&cfg.Pipeline, logger)

	fileSys := files.New(db, store, pipe, logger, &cfg.Storage, cfg.Pagination)

	router := buildRouter(lc, fileSys, cfg, logger)
	handler := buildMiddleware(cfg, logger).Apply(router)

	logger.Info("server initialized", "addr", cfg.Server.Addr())

	return &Server{
		config:    cfg,
		logger:    logger,
		lifecycle: lc,
		db:        db,
		storage:   store,
		pipeline:  pipe,
		http:      server.New(&cfg.Server, handler, logger, cfg.ShutdownTimeoutDuration()),
	}, nil
}

// Start begins all subsystems and returns when startup hooks are registered.
func (s *Server) Start() error {
	s.logger.Info("starting service")

	if err := s.storage.Start(s.lifecycle); err != nil {
		return err
	}
	if err := s.pipeline.Start(s.lifecycle); err != nil {
		return err
	}
	if err := s.http.Start(s.lifecycle); err != nil {
		return err
	}

	go func() {
		s.lifecycle.WaitForStartup()
		s.logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within the provided timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.logger.Info("initiating shutdown")
	return s.lifecycle.Shutdown(timeout)
}

// Close releases held resources.
func (s *Server) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("database close error", "error", err)
	}
}

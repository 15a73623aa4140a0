// Package logging builds slog loggers from service configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var handlerFor = map[Format]func(io.Writer, *slog.HandlerOptions) slog.Handler{
	FormatText: func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewTextHandler(w, opts)
	},
	FormatJSON: func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewJSONHandler(w, opts)
	},
}

// New creates the service logger from the finalized configuration, writing
// to stdout.
func New(cfg *Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a logger against an explicit writer. Tests use it to
// capture output.
func NewWithWriter(cfg *Config, w io.Writer) *slog.Logger {
	build, ok := handlerFor[cfg.Format]
	if !ok {
		build = handlerFor[FormatJSON]
	}
	return slog.New(build(w, &slog.HandlerOptions{Level: cfg.Level.slogLevel()}))
}

// Bootstrap returns the JSON logger used before configuration is loaded.
func Bootstrap() *slog.Logger {
	return New(&Config{Level: LevelInfo, Format: FormatJSON})
}

// Level represents a logging severity level.
type Level string

// Log level constants.
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var slogLevels = map[Level]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// Validate checks if the level is a valid logging level.
func (l Level) Validate() error {
	if _, ok := slogLevels[l]; !ok {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l)
	}
	return nil
}

// slogLevel resolves the configured level, defaulting unknown values to info.
func (l Level) slogLevel() slog.Level {
	if level, ok := slogLevels[l]; ok {
		return level
	}
	return slog.LevelInfo
}

// Format represents the log output format.
type Format string

// Log format constants.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Validate checks if the format is a valid logging format.
func (f Format) Validate() error {
	if _, ok := handlerFor[f]; !ok {
		return fmt.Errorf("invalid log format: %s (must be text or json)", f)
	}
	return nil
}

// Package logging builds the slog logger used across keeper.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/talekeeper/keeper/internal/config"
	"github.com/talekeeper/keeper/internal/defs"
)

type ctxKey struct{}

// ParseLevel maps a config level name to a slog.Level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler returns a text or JSON handler writing to w.
func NewHandler(w io.Writer, sys config.SystemConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(sys.LogLevel)}
	if sys.LogFormat == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Open creates a logger that appends to the configured log file
// (<configDir>/keeper.log when unset). The terminal belongs to the UI, so
// nothing is written to stdout. The returned closer releases the file.
func Open(sys config.SystemConfig, configDir string) (*slog.Logger, io.Closer, error) {
	path := sys.LogFile
	if path == "" {
		path = filepath.Join(configDir, defs.LogFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(NewHandler(f, sys)), f, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

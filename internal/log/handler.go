package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/LexTOliver/web-scraping/internal/config"
)

// MultiHandler fans out log records to several slog handlers, letting one
// logger write to both the console and a log file. A record is handled by
// every wrapped handler whose level admits it.
//
// Design decision: We implement slog.Handler rather than wrapping a custom
// logger type because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Callers keep passing *slog.Logger around, nothing else changes
type MultiHandler struct {
	// handlers are the wrapped destinations.
	handlers []slog.Handler
}

// NewMultiHandler creates a handler that forwards records to all given handlers.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Enabled reports whether at least one wrapped handler accepts the level.
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle forwards the record to every wrapped handler that accepts its level.
// The first error encountered is returned after all handlers have run.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WithAttrs returns a new MultiHandler whose wrapped handlers carry the attrs.
func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: handlers}
}

// WithGroup returns a new MultiHandler whose wrapped handlers carry the group.
func (h *MultiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &MultiHandler{handlers: handlers}
}

// ParseLevel maps a config level string to a slog.Level.
// Unknown or empty strings fall back to warn, the quiet default.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New builds a logger from the logging configuration. The returned closer
// owns the log file, if any, and is a no-op otherwise.
//
// Handlers: "console" writes text records to stderr, "file" appends to the
// configured log file (directories are created as needed). With both
// enabled, records fan out through MultiHandler.
func New(cfg config.LoggingConfig, verbose bool) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(cfg.Level)
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	handlers := make([]slog.Handler, 0, 2)
	var closer io.Closer = nopCloser{}

	names := cfg.Handlers
	if len(names) == 0 {
		names = []string{"console"}
	}

	for _, name := range names {
		switch strings.ToLower(name) {
		case "console":
			handlers = append(handlers, slog.NewTextHandler(os.Stderr, opts))
		case "file":
			if cfg.File == "" {
				return nil, nil, fmt.Errorf("log handler %q requires a file path", name)
			}
			if dir := filepath.Dir(cfg.File); dir != "." {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
				}
			}
			f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // User-provided log path is intentional
			if err != nil {
				return nil, nil, fmt.Errorf("failed to open log file: %w", err)
			}
			closer = f
			handlers = append(handlers, slog.NewTextHandler(f, opts))
		default:
			return nil, nil, fmt.Errorf("unknown log handler %q", name)
		}
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closer, nil
	}
	return slog.New(NewMultiHandler(handlers...)), closer, nil
}

// nopCloser is returned when no handler owns a file.
type nopCloser struct{}

// Close implements io.Closer.
func (nopCloser) Close() error { return nil }

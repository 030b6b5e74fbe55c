package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options control where and how verbosely logs are written.
type Options struct {
	Debug bool
	Path  string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger plus the closer for its file. Without Debug the logger
// discards everything and no file is touched.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if !opts.Debug {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
	if opts.Path == "" {
		return nil, nil, fmt.Errorf("debug logging requires a log file path")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, file, nil
}

// Stderr returns an info-level text logger for non-interactive commands.
func Stderr(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

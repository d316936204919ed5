package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"texbridge/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Writer receives output; nil means stderr.
	Writer      io.Writer
	Development bool
}

// New constructs a slog logger using the provided options. Debug level and
// development mode add source locations.
func New(opts Options) (*slog.Logger, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(opts.Level))
	addSource := opts.Development || levelVar.Level() <= slog.LevelDebug

	var build func(io.Writer, *slog.LevelVar, bool) slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		build = newPrettyHandler
	case "json":
		build = newJSONHandler
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	return slog.New(build(w, levelVar, addSource)), nil
}

// NewFromConfig creates a logger using application config defaults. Verbose
// mode forces debug output. When a log file is configured, records are also
// written there as JSON regardless of the console format. The returned closer
// releases the log file and is never nil.
func NewFromConfig(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cfg == nil {
		logger, err := New(Options{Level: "info", Format: "console"})
		return logger, nopCloser{}, err
	}

	level := cfg.Logging.Level
	if cfg.Logging.Verbose {
		level = "debug"
	}
	console, err := New(Options{Level: level, Format: cfg.Logging.Format})
	if err != nil {
		return nil, nil, err
	}
	path := strings.TrimSpace(cfg.Logging.File)
	if path == "" {
		return console, nopCloser{}, nil
	}
	f, err := openLogFile(path)
	if err != nil {
		return nil, nil, err
	}
	file, err := New(Options{Level: level, Format: "json", Writer: f})
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return slog.New(newFanoutHandler(console.Handler(), file.Handler())), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}

// Package logging installs the chzzk CLI's slog logger. Records go to stderr,
// or to a size-rotated file when a path is configured, so that `watch` can
// run unattended without filling the disk.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Handler formats accepted by NewHandler.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config selects the level, format and destination of CLI logs.
type Config struct {
	Level    string // debug, info, warn or error
	Format   string // FormatText or FormatJSON
	FilePath string // empty keeps logs on stderr

	// Rotation, used only with FilePath.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig keeps the CLI quiet: only warnings reach stderr, where they
// would interleave with table output.
func DefaultConfig() Config {
	return Config{
		Level:      "warn",
		Format:     FormatText,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Compress:   true,
	}
}

// Setup replaces the default slog logger according to cfg. The returned
// function flushes and closes the log file, if any.
func Setup(cfg Config) (func() error, error) {
	w, closeFn, err := openWriter(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(NewHandler(w, cfg)))
	return closeFn, nil
}

func openWriter(cfg Config) (io.Writer, func() error, error) {
	if cfg.FilePath == "" {
		return os.Stderr, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	return rotator, rotator.Close, nil
}

// NewHandler returns a text or JSON handler writing to w at cfg.Level.
func NewHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, FormatJSON) {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

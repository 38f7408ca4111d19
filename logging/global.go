// Package logging wires log/slog to a weekly rotating file writer and
// exposes package-level helpers for the rare call sites that have no
// injected logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Service bundles the configured logger with the writer it owns.
type Service struct {
	Logger *slog.Logger
	writer *RotatingWriter
}

var defaultService *Service

// parseLevel maps the configured level name onto a slog level, defaulting
// to info for anything unrecognized.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Init configures the global logger to write JSON to both stderr and a
// rotating file under logDir, and installs it as slog's default.
func Init(logDir, level string, retentionWeeks int) {
	writer := NewRotatingWriter(logDir, retentionWeeks)
	handler := slog.NewJSONHandler(io.MultiWriter(os.Stderr, writer), &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	defaultService = &Service{
		Logger: slog.New(handler),
		writer: writer,
	}
	slog.SetDefault(defaultService.Logger)
}

// Logger returns the configured logger, or a plain stderr logger when Init
// has not run (tests, early startup).
func Logger() *slog.Logger {
	if defaultService != nil && defaultService.Logger != nil {
		return defaultService.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// Close flushes and closes the rotating log file.
func Close() {
	if defaultService != nil && defaultService.writer != nil {
		_ = defaultService.writer.Close()
	}
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

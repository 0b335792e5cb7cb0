package utils

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the text logger used across the service. Unknown levels
// fall back to INFO.
func NewLogger(levelStr string) *slog.Logger {
	return NewLoggerTo(os.Stderr, levelStr)
}

func NewLoggerTo(w io.Writer, levelStr string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(levelStr)})
	return slog.New(handler)
}

func ParseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DiscardLogger is handy in tests.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with application-specific functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger with the specified level writing JSON to stdout
func New(level string) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter creates a JSON logger writing to w. Tests use it to capture diagnostics.
func NewWithWriter(level string, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	handler := slog.NewJSONHandler(w, opts)
	return &Logger{Logger: slog.New(handler)}
}

// Default returns a logger with default settings
func Default() *Logger {
	return New("info")
}

// With returns a Logger that includes the given attributes in every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Redact keeps the first few characters of a secret so operators can tell
// which key is loaded without leaking it. Empty values render as MISSING.
func Redact(secret string) string {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "MISSING"
	}
	if len(secret) <= 6 {
		return "***"
	}
	return secret[:6] + "..."
}

// OrMissing returns v, or MISSING when v is blank.
func OrMissing(v string) string {
	if strings.TrimSpace(v) == "" {
		return "MISSING"
	}
	return v
}

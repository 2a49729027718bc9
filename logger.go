package chash

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with table-specific fields.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithStrategy tags every record with the collision strategy.
func (l *Logger) WithStrategy(s Strategy) *Logger {
	return &Logger{Logger: l.Logger.With("strategy", s.String())}
}

func (l *Logger) logResize(from, to, count int, err error) {
	if err != nil {
		l.Warn("resize failed", "from", from, "to", to, "count", count, "error", err)
		return
	}
	l.Debug("resize completed", "from", from, "to", to, "count", count)
}

func (l *Logger) logCompact(capacity, dropped int, err error) {
	if err != nil {
		l.Warn("compaction failed", "capacity", capacity, "error", err)
		return
	}
	l.Debug("compaction completed", "capacity", capacity, "tombstones", dropped)
}

package termfilter

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with termfilter-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSegment adds a segment field to the logger.
func (l *Logger) WithSegment(id uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("segment", id),
	}
}

// WithFilter adds a filter field to the logger.
func (l *Logger) WithFilter(f string) *Logger {
	return &Logger{
		Logger: l.Logger.With("filter", f),
	}
}

// LogEvaluate logs a filter evaluation.
func (l *Logger) LogEvaluate(ctx context.Context, filter string, segments, matches int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "evaluate failed",
			"filter", filter,
			"segments", segments,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "evaluate completed",
			"filter", filter,
			"segments", segments,
			"matches", matches,
			"duration", duration,
		)
	}
}

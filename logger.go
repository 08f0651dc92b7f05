package pyrsa

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with pipeline-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRadius adds the searchlight radius field to the logger.
func (l *Logger) WithRadius(radius float64) *Logger {
	return &Logger{Logger: l.Logger.With("radius", radius)}
}

// WithCenters adds a retained-center count field to the logger.
func (l *Logger) WithCenters(n int) *Logger {
	return &Logger{Logger: l.Logger.With("centers", n)}
}

// WithMethod adds a dissimilarity method field to the logger.
func (l *Logger) WithMethod(method string) *Logger {
	return &Logger{Logger: l.Logger.With("method", method)}
}

// LogScan logs a completed searchlight generator scan.
func (l *Logger) LogScan(ctx context.Context, centers int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "searchlight scan failed", "error", err)
		return
	}
	l.InfoContext(ctx, "searchlight scan completed",
		"centers", centers,
		"duration", d,
	)
}

// LogCalc logs a completed searchlight RDM calculation.
func (l *Logger) LogCalc(ctx context.Context, centers, pairs int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "rdm calculation failed", "error", err)
		return
	}
	l.InfoContext(ctx, "rdm calculation completed",
		"centers", centers,
		"pairs", pairs,
		"duration", d,
	)
}

// LogEvaluate logs a completed model evaluation pass.
func (l *Logger) LogEvaluate(ctx context.Context, centers, failed int, d time.Duration, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "model evaluation failed", "error", err)
	case failed > 0:
		l.WarnContext(ctx, "model evaluation completed with failures",
			"centers", centers,
			"failed", failed,
			"duration", d,
		)
	default:
		l.InfoContext(ctx, "model evaluation completed",
			"centers", centers,
			"duration", d,
		)
	}
}

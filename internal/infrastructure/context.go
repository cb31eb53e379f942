package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// GenerateRunID creates a unique identifier for one pipeline run. The
// run ID doubles as the trace ID on every log record the run emits.
func GenerateRunID() string {
	return uuid.New().String()
}

// ContextWithRunID returns a context carrying a freshly generated run ID
// as its trace ID, along with the ID itself.
func ContextWithRunID(ctx context.Context) (context.Context, string) {
	runID := GenerateRunID()
	return WithTraceID(ctx, runID), runID
}

// LoggerWithContext creates a logger that includes the trace ID from context.
func LoggerWithContext(ctx context.Context) *slog.Logger {
	logger := GetLogger()

	if traceID := GetTraceID(ctx); traceID != "" {
		logger = logger.With("trace_id", traceID)
	}

	return logger
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// WithError creates a logger with an error field
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With("error", err.Error())
}

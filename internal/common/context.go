package common

import (
	"context"
	"time"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRunID      contextKey = "run_id"
	ContextKeySourceFile contextKey = "source_file"
)

// WithRunID adds a batch run ID to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// RunIDFromContext extracts the batch run ID from context
func RunIDFromContext(ctx context.Context) string {
	if runID, ok := ctx.Value(ContextKeyRunID).(string); ok {
		return runID
	}
	return ""
}

// WithSourceFile adds the document being processed to the context
func WithSourceFile(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, ContextKeySourceFile, source)
}

// SourceFileFromContext extracts the document being processed from context
func SourceFileFromContext(ctx context.Context) string {
	if source, ok := ctx.Value(ContextKeySourceFile).(string); ok {
		return source
	}
	return ""
}

// WithTimeout creates a context with the specified timeout. A non-positive
// timeout returns a cancelable child without a deadline.
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

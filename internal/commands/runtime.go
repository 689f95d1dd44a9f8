package commands

import (
	"context"
	"time"
)

// DefaultCommandTimeout bounds command execution unless a handler overrides
// it. Zero or negative overrides disable the timeout entirely.
const DefaultCommandTimeout = 30 * time.Second

// EnsureContext guards against nil contexts from host callers.
func EnsureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// WithCommandTimeout applies timeout when positive; otherwise the context is
// returned as-is with a no-op cancel.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

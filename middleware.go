package mcplite

import (
	"context"
	"log/slog"
	"time"
)

// Middleware wraps a tool handler with cross-cutting behavior. name is the tool name.
type Middleware func(name string, next Handler) Handler

// WithLogging returns a middleware that logs start, end, duration, and errors.
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(name string, next Handler) Handler {
		return func(ctx context.Context, args map[string]any) (any, error) {
			logger.InfoContext(ctx, "tool start", "tool", name)
			start := time.Now()
			res, err := next(ctx, args)
			dur := time.Since(start)
			if err != nil {
				logger.ErrorContext(ctx, "tool error", "tool", name, "duration", dur, "error", err)
				return nil, err
			}
			logger.InfoContext(ctx, "tool end", "tool", name, "duration", dur)
			return res, nil
		}
	}
}

// WithTimeout returns a middleware that runs the handler under a context deadline.
// Handlers must watch ctx for the deadline to have any effect; the Dispatcher itself
// never interrupts a handler.
func WithTimeout(d time.Duration) Middleware {
	return func(_ string, next Handler) Handler {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context, args map[string]any) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, args)
		}
	}
}

// Use stores the given middlewares and reapplies them from scratch to all registered
// tools (onion order: first middleware is outermost). Tools registered after Use also
// get them. Calling Use again replaces the chain. Existing records are replaced by
// rewrapped copies, so records already handed out stay unchanged.
func (r *Registry) Use(middlewares ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = middlewares
	for pair := r.tools.Oldest(); pair != nil; pair = pair.Next() {
		rec := *pair.Value
		rec.call = r.wrap(rec.Name, rec.handler)
		pair.Value = &rec
	}
}

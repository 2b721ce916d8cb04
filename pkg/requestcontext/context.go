// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Values are set by middleware (or tests) and consumed by services. Keeping
// this package free of net/http lets domain code read the request ID and the
// analysis clock without pulling in transport concerns.
//
// Usage in services (read values):
//
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//
// Usage in tests (freeze the clock so age computations are deterministic):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// RequestID retrieves the request ID from the context. Empty if not set.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for non-HTTP contexts (workers, CLI).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Age computations and
// future-date checks read the clock through Now, so tests pin it here.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

package diagnostics

import (
	"context"

	"github.com/google/uuid"
)

type callerIDKey struct{}

// WithCallerID returns a child context that identifies the caller by id.
func WithCallerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, callerIDKey{}, id)
}

// WithNewCallerID returns a child context carrying a freshly generated random caller ID, and the ID.
func WithNewCallerID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return WithCallerID(ctx, id), id
}

// CallerID returns the caller ID carried by ctx, if any.
func CallerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(callerIDKey{}).(string)
	return id, ok
}

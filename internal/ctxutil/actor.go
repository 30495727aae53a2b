// Package ctxutil carries the acting admin through request contexts.
package ctxutil

import "context"

type actorKey struct{}

// WithActorID returns a context carrying the ID of the admin performing the operation.
func WithActorID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the acting admin ID, or nil when the caller is anonymous.
func ActorFromContext(ctx context.Context) *uint {
	if v, ok := ctx.Value(actorKey{}).(uint); ok {
		return &v
	}
	return nil
}

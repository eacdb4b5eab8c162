package utils

import (
	"context"
)

type contextKey string

const ContextIdentityKey contextKey = "identity"

// Identity is the authenticated caller, taken from verified token claims.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ContextIdentityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ContextIdentityKey).(Identity)
	return id, ok && id.UserID != ""
}

// GetUserIDFromContext returns the caller's user id, or "" with false for
// anonymous requests.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := IdentityFromContext(ctx)
	return id.UserID, ok
}

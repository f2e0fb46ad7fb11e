package domain

import "context"

type identityKey struct{}

// ContextWithIdentity stores the caller identity in the context.
// The identity is an opaque label used only for audit logging.
func ContextWithIdentity(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, identityKey{}, actor)
}

// IdentityFromContext extracts the caller identity from the context.
// The second return is false for anonymous requests.
func IdentityFromContext(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(identityKey{}).(string)
	return actor, ok && actor != ""
}

package http

import (
	"context"
	"net/http"

	"volunteer-backend/internal/security"
)

type identityKey struct{}

// WithIdentity stores the verified caller identity in ctx
func WithIdentity(ctx context.Context, identity security.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity set by the auth middleware
func IdentityFromContext(ctx context.Context) (security.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(security.Identity)
	return identity, ok
}

func callerEmail(r *http.Request) string {
	identity, _ := IdentityFromContext(r.Context())
	return identity.Email
}

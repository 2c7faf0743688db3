package identity

import (
	"context"
	"strings"
)

type ctxKey string

const identityIDKey ctxKey = "identity_id"

// ContextWithIdentity stores the verified caller's identity id in the context.
func ContextWithIdentity(ctx context.Context, identityID string) context.Context {
	return context.WithValue(ctx, identityIDKey, strings.TrimSpace(identityID))
}

// IdentityFromContext extracts the verified identity id from the context.
func IdentityFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(identityIDKey).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

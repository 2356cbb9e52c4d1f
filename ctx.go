package auth

import (
	"context"

	"github.com/goliatone/go-router"
)

var principalCtxKey = &contextKey{"principal"}

type contextKey struct {
	name string
}

// PrincipalLocalsKey is the router Locals key the dispatcher stores the
// resolved principal under.
const PrincipalLocalsKey = "auth_principal"

// WithPrincipalContext sets the Principal in the given context
func WithPrincipalContext(r context.Context, p *Principal) context.Context {
	return context.WithValue(r, principalCtxKey, p)
}

// PrincipalFromContext finds the principal from the context.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	raw, ok := ctx.Value(principalCtxKey).(*Principal)
	return raw, ok
}

// PrincipalFromRouter extracts the principal from the router context
func PrincipalFromRouter(ctx router.Context) (*Principal, bool) {
	raw := ctx.Locals(PrincipalLocalsKey)
	if raw == nil {
		return nil, false
	}
	p, ok := raw.(*Principal)
	return p, ok
}

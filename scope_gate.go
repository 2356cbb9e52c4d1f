package auth

import (
	"github.com/goliatone/go-router"
)

// EnsureScopesIncluded verifies that the access token used for
// authentication includes every scope given as argument.
//
// Access is granted iff the required scopes are a subset of the granted
// ones. A principal whose strategy carries no scopes (a direct mail login,
// a bare client) is denied any non-empty requirement. Denial is always this
// 403; it is never an authentication failure, which the dispatcher already
// answered with a 401.
func EnsureScopesIncluded(scopes ...string) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			principal, ok := PrincipalFromRouter(ctx)
			if ok && principal.Context.HasScopes(scopes...) {
				return hf(ctx)
			}

			return ctx.JSON(router.StatusForbidden, map[string]any{
				"status":  router.StatusForbidden,
				"message": "No authorization to see this page",
			})
		}
	}
}

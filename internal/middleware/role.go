package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/iliyamo/movie-review-api/internal/model"
)

// HasPermission is the authorization voter: it grants access iff the
// caller's permission set intersects the allowed set. A caller holding root
// also passes any admin gate; the reverse does not hold.
func HasPermission(granted []string, allowed ...string) bool {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
		if a == model.PermissionAdmin {
			set[model.PermissionRoot] = true
		}
	}
	for _, g := range granted {
		if set[g] {
			return true
		}
	}
	return false
}

// RequirePermission returns a middleware enforcing that the authenticated
// caller holds one of the given permission tags. It assumes JWTAuth has
// already stored the permission claims in the context; an authenticated but
// under-permissioned request is rejected with 403.
func RequirePermission(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			granted, ok := c.Get(CtxPermissions).([]string)
			if !ok || !HasPermission(granted, allowed...) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

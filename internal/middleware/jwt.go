package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/movie-review-api/internal/utils"
)

// Context keys populated by JWTAuth for downstream middleware and handlers.
const (
	CtxUserID      = "user_id"
	CtxEmail       = "email"
	CtxPermissions = "permissions"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the subject, email and permission claims into the request
// context. The provided secret must match the one used when issuing tokens.
// Requests without a valid token are rejected with 401; this is one of only
// two HTTP error statuses the API uses (the other being 403 from the
// permission voter), everything else travels in the response envelope.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxPermissions, claims.Permissions)
			return next(c)
		}
	}
}

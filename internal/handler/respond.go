package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-review-api/internal/middleware"
	"github.com/iliyamo/movie-review-api/internal/model"
)

// validate checks request DTO tags (email shape, password length, rating
// bounds) before any handler touches the store.
var validate = validator.New()

// envelope is the uniform response body. Business-rule failures are
// reported with HTTP 200 and success=false; only authentication and
// authorization failures use 401/403. This split is inherited from the
// system this service replaces and is part of its contract.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func ok(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func fail(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, envelope{Success: false, Data: nil, Message: message})
}

// reqContext bounds store calls to a deadline tied to the request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// callerID returns the authenticated user's id from the JWT claims, empty
// when the route is unauthenticated.
func callerID(c echo.Context) string {
	v, _ := c.Get(middleware.CtxUserID).(string)
	return v
}

func callerEmail(c echo.Context) string {
	v, _ := c.Get(middleware.CtxEmail).(string)
	return v
}

func callerPermissions(c echo.Context) []string {
	v, _ := c.Get(middleware.CtxPermissions).([]string)
	return v
}

func callerIsAdmin(c echo.Context) bool {
	return middleware.HasPermission(callerPermissions(c), model.PermissionAdmin)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-review-api/internal/model"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		name    string
		granted []string
		allowed []string
		want    bool
	}{
		{"direct match", []string{model.PermissionUser}, []string{model.PermissionUser}, true},
		{"no overlap", []string{model.PermissionUser}, []string{model.PermissionAdmin}, false},
		{"root passes admin gate", []string{model.PermissionRoot}, []string{model.PermissionAdmin}, true},
		{"admin does not pass root gate", []string{model.PermissionAdmin}, []string{model.PermissionRoot}, false},
		{"empty granted", nil, []string{model.PermissionUser}, false},
		{"any of several", []string{model.PermissionUser}, []string{model.PermissionAdmin, model.PermissionUser}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasPermission(tc.granted, tc.allowed...))
		})
	}
}

func runRequirePermission(t *testing.T, granted any, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if granted != nil {
		c.Set(CtxPermissions, granted)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	require.NoError(t, RequirePermission(allowed...)(next)(c))
	return rec
}

func TestRequirePermissionForbidsUnderPermissioned(t *testing.T) {
	rec := runRequirePermission(t, []string{model.PermissionUser}, model.PermissionAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePermissionForbidsMissingClaims(t *testing.T) {
	rec := runRequirePermission(t, nil, model.PermissionAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePermissionAdmitsRootToAdminRoutes(t *testing.T) {
	rec := runRequirePermission(t, []string{model.PermissionRoot}, model.PermissionAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-review-api/internal/utils"
)

const testSecret = "test-secret"

func runJWT(t *testing.T, authorization string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	require.NoError(t, JWTAuth(testSecret)(next)(c))
	return rec, c
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	rec, _ := runJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	rec, _ := runJWT(t, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	raw, err := utils.NewAccessToken("other-secret", "u1", "a@b.c", []string{"user"}, 15)
	require.NoError(t, err)

	rec, _ := runJWT(t, "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthPopulatesContext(t *testing.T) {
	raw, err := utils.NewAccessToken(testSecret, "u1", "a@b.c", []string{"user", "admin"}, 15)
	require.NoError(t, err)

	rec, c := runJWT(t, "Bearer "+raw)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", c.Get(CtxUserID))
	assert.Equal(t, "a@b.c", c.Get(CtxEmail))
	assert.Equal(t, []string{"user", "admin"}, c.Get(CtxPermissions))
}

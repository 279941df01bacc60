package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehound/gamehound/internal/utils"
)

const testSecret = "middleware-test-secret"

// runProtected sends a request with the given Authorization header through
// JWTAuth and a probe handler that reports the context identity.
func runProtected(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c
}

func TestJWTAuth_MissingTokenIsUnauthorized(t *testing.T) {
	t.Parallel()

	rec, _ := runProtected(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing token")
}

func TestJWTAuth_NonBearerSchemeIsUnauthorized(t *testing.T) {
	t.Parallel()

	rec, _ := runProtected(t, "Basic dXNlcjpwdw==")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing token")
}

func TestJWTAuth_GarbageTokenIsForbidden(t *testing.T) {
	t.Parallel()

	rec, _ := runProtected(t, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestJWTAuth_WrongSecretIsForbidden(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewSessionToken("some-other-secret", 9, "c@x.com", "C", "developer", 15)
	require.NoError(t, err)

	rec, _ := runProtected(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuth_ExpiredTokenIsForbidden(t *testing.T) {
	t.Parallel()

	// Expired well past the clock-skew leeway.
	tok, err := utils.NewSessionToken(testSecret, 9, "c@x.com", "C", "developer", -5)
	require.NoError(t, err)

	rec, _ := runProtected(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuth_ValidTokenResolvesIdentity(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewSessionToken(testSecret, 42, "ann@x.com", "Ann", "lead", 15)
	require.NoError(t, err)

	rec, c := runProtected(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), c.Get("user_id"))
	assert.Equal(t, "ann@x.com", c.Get("email"))
	assert.Equal(t, "lead", c.Get("role"))
}

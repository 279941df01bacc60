package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/gamehound/gamehound/internal/config"
)

func cacheTestCfg() config.CacheConfig {
	return config.CacheConfig{
		Prefix:      "cache",
		KeyStrategy: "user_route_query",
	}
}

// boardCtx builds a context the way Echo hands it to middleware for a
// task-board request: concrete URL, route pattern with the :id placeholder,
// identity already resolved.
func boardCtx(target string, uid uint64) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/projects/:id/tasks")
	c.Set("user_id", uid)
	return c
}

func TestCacheKey_DistinctAcrossPathParams(t *testing.T) {
	t.Parallel()

	cfg := cacheTestCfg()
	// Same user, same route pattern, different project: the boards must
	// never share an entry.
	k1 := cacheKeyFrom(cfg, boardCtx("/api/projects/1/tasks", 7), "0")
	k2 := cacheKeyFrom(cfg, boardCtx("/api/projects/2/tasks", 7), "0")
	assert.NotEqual(t, k1, k2)
}

func TestCacheKey_DistinctAcrossUsers(t *testing.T) {
	t.Parallel()

	cfg := cacheTestCfg()
	k1 := cacheKeyFrom(cfg, boardCtx("/api/projects/1/tasks", 7), "0")
	k2 := cacheKeyFrom(cfg, boardCtx("/api/projects/1/tasks", 8), "0")
	assert.NotEqual(t, k1, k2)
}

func TestCacheKey_StableForSameRequest(t *testing.T) {
	t.Parallel()

	cfg := cacheTestCfg()
	k1 := cacheKeyFrom(cfg, boardCtx("/api/projects/1/tasks", 7), "0")
	k2 := cacheKeyFrom(cfg, boardCtx("/api/projects/1/tasks", 7), "0")
	assert.Equal(t, k1, k2)
}

func TestCacheKey_VersionBumpOrphansOldEntries(t *testing.T) {
	t.Parallel()

	cfg := cacheTestCfg()
	before := cacheKeyFrom(cfg, boardCtx("/api/projects/1/tasks", 7), "3")
	after := cacheKeyFrom(cfg, boardCtx("/api/projects/1/tasks", 7), "4")
	assert.NotEqual(t, before, after)
}

func TestIsMutation(t *testing.T) {
	t.Parallel()

	assert.True(t, isMutation(http.MethodPost))
	assert.True(t, isMutation(http.MethodPut))
	assert.True(t, isMutation(http.MethodDelete))
	assert.False(t, isMutation(http.MethodGet))
	assert.False(t, isMutation(http.MethodHead))
}

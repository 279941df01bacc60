package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/gamehound/gamehound/internal/config"
	"github.com/gamehound/gamehound/internal/handler"    // handlers implement the endpoint logic
	"github.com/gamehound/gamehound/internal/middleware" // middleware for JWT auth, rate limiting and caching
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check used by load balancers and the
// reachability probe the frontend fires on load.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/api/test", handler.APITest)
}

// RegisterAPI wires the application endpoints. Registration and login live
// under /api without authentication; everything else under /api requires a
// valid Bearer token. The rate limiter covers both groups so credential
// endpoints are brute-force limited, and the response cache sits inside the
// protected group so cached bodies are always keyed to a verified identity.
func RegisterAPI(e *echo.Echo, a *handler.AuthHandler, p *handler.ProjectHandler, t *handler.TaskHandler, jwtSecret string, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Unauthenticated: register and login mint tokens.
	pub := e.Group("/api", limiter)
	pub.POST("/register", a.Register)
	pub.POST("/login", a.Login)

	// Protected: every route below verifies the bearer token first.
	auth := e.Group("/api", limiter, middleware.JWTAuth(jwtSecret), cache)
	auth.GET("/me", a.Me)

	auth.GET("/projects", p.List)
	auth.POST("/projects", p.Create)
	auth.PUT("/projects/:id", p.Update)
	auth.DELETE("/projects/:id", p.Delete)

	auth.GET("/projects/:id/tasks", t.ListByProject)
	auth.POST("/projects/:id/tasks", t.Create)
	auth.PUT("/tasks/:id", t.Update)
	auth.DELETE("/tasks/:id", t.Delete)
}

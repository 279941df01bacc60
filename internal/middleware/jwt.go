package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming
	"time"     // clock-skew leeway for expiry validation

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Leeway tolerated between the issuer's clock and ours when validating the
// exp claim.
const clockSkew = 30 * time.Second

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and injects the token's identity claims into the request context. The
// provided secret must match the one used when issuing tokens. Handlers
// behind this middleware read the caller via c.Get("user_id"),
// c.Get("email") and c.Get("role").
//
// The two failure modes are deliberately distinct: a request with no token
// at all is unauthenticated (401), while a request that presents a token we
// cannot verify is forbidden (403).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			// Anything else counts as a missing token.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with the HS256 secret. The keyfunc pins the signing
			// method so a token signed with a different algorithm is
			// rejected outright.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrForbidden
				}
				return []byte(secret), nil
			}, jwt.WithLeeway(clockSkew))
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}

			// Numeric JSON claims decode as float64; the subject is our
			// user id and every downstream check wants it as uint64.
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}
			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)

			c.Set("user_id", uint64(sub))
			c.Set("email", email)
			c.Set("role", role)
			return next(c)
		}
	}
}

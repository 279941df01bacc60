package utils // package utils provides helper functions for token creation and hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed JWT session token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. The token is the only session credential the
// API issues; it is stateless and carried in the Authorization header on
// every protected request.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user's identity fields and a TTL in minutes, and
// returns a SessionToken containing the signed token and its expiration
// time. The claims are: subject (sub), email, name, role, expiration (exp)
// and issued at (iat). The stored system has no expiry on its tokens; the
// exp claim here is a deliberate hardening of that contract.
func NewSessionToken(secret string, userID uint64, email, name, role string, ttlMin int) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"name":  name,
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

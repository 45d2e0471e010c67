// Package auth provides JWT session tokens and password hashing for
// the API. Tokens carry {id, username, type} claims and are accepted
// from either a bearer header or an HTTP-only cookie.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// TokenCookie is the cookie the login endpoint sets and logout clears.
const TokenCookie = "token"

// Sentinel errors for authentication failures. The HTTP layer maps
// all of them to 401; the distinction exists for logging.
var (
	ErrNoToken      = errors.New("no token provided")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the decoded payload of a session token.
type Claims struct {
	UserID   int64
	Username string
	Type     string
}

// IsAdmin reports whether the claims belong to an admin account.
func (c *Claims) IsAdmin() bool {
	return c.Type == "admin"
}

// ExtractToken pulls the session token from the request. The
// Authorization bearer header wins over the cookie when both are set.
func ExtractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), nil
	}

	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", ErrNoToken
}

// contextKey is the type for context keys in this package.
type contextKey string

// claimsKey is the context key for the authenticated claims.
const claimsKey contextKey = "claims"

// FromContext retrieves the authenticated claims from the context.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// WithClaims stores authenticated claims in the context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

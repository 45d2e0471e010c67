package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/storefrontdev/storefront/internal/auth"
)

// authErrorResponse is the JSON error body for auth failures.
type authErrorResponse struct {
	Error string `json:"error"`
}

// RequireAuth returns a middleware that rejects requests without a
// valid session token. The token is taken from the Authorization
// bearer header or, failing that, the session cookie. Verified claims
// are attached to the request context.
func RequireAuth(tokens *auth.TokenManager, logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ExtractToken(r)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				logger.Warn("token rejected",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Bool("expired", errors.Is(err, auth.ErrTokenExpired)),
				)
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := auth.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns a middleware that rejects non-admin sessions.
// It must run after RequireAuth, which puts the claims on the context.
func RequireAdmin(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.FromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !claims.IsAdmin() {
				logger.Warn("admin access denied",
					zap.String("username", claims.Username),
					zap.String("path", r.URL.Path),
				)
				writeAuthError(w, http.StatusForbidden, "admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeAuthError writes a JSON error response for auth failures.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(authErrorResponse{Error: message})
}

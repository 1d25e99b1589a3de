// internal/middleware/auth.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

// ScopeContextKey carries the authenticated owner scope (the token subject).
const ScopeContextKey contextKey = "owner_scope"

// Auth validates the bearer token issued by the external auth service
// (HS256, shared secret) and stores the token subject in the request context
// as the caller's owner scope. The public RSVP route is mounted outside this
// middleware.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				http.Error(w, "token has no subject", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ScopeContextKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ScopeFromContext returns the authenticated owner scope, or "" on the
// public surface.
func ScopeFromContext(ctx context.Context) string {
	scope, _ := ctx.Value(ScopeContextKey).(string)
	return scope
}

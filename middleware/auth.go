package middleware

import (
	"context"
	"net/http"
	"strings"

	"canvaspad/internal/auth/model"
	"canvaspad/pkg/httpx"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	EmailKey  contextKey = "email"
)

// TokenVerifier validates a session token string and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*model.Claims, error)
}

// Auth is the access guard: it locates a session token, verifies it, and
// attaches the identity to the request context. It performs no store
// access and is safe to invoke concurrently for unrelated requests.
//
// The token is read from the session cookie first; the Authorization
// header is the fallback for non-browser clients.
func Auth(verifier TokenVerifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string
			if cookie, err := r.Cookie(cookieName); err == nil {
				tokenString = cookie.Value
			}
			if tokenString == "" {
				authHeader := r.Header.Get("Authorization")
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}
			if tokenString == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "no token provided")
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the verified identity attached by Auth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// Email returns the verified email attached by Auth.
func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

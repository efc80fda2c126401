// Package auth validates bearer tokens and resolves the requesting user.
// Tokens are issued elsewhere; this service only verifies signatures and
// extracts the user_id claim into the request context.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hmercer/marginalia/pkg/handlers"
)

type contextKey struct{}

var userKey contextKey

// UserID returns the authenticated user's identity from the request context.
// The second return is false when the request never passed the middleware.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey).(string)
	return id, ok
}

// WithUserID returns a context carrying the given user identity.
// Handler tests use it to simulate authenticated requests.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// Middleware validates the Authorization header and attaches the user_id
// claim to the request context. Requests without a valid bearer token are
// rejected with 401.
func Middleware(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	key := []byte(secret)
	log := logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondError(w, log, http.StatusUnauthorized, "Missing or invalid authorization token", nil)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				handlers.RespondError(w, log, http.StatusUnauthorized, "Invalid authorization token", nil)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				handlers.RespondError(w, log, http.StatusUnauthorized, "Invalid token claims", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Khanalpratyush/splittwise/pkg/auth"
	"github.com/Khanalpratyush/splittwise/pkg/response"
)

// ContextKey is the type for context keys set by this package.
type ContextKey string

// UserIDKey holds the authenticated user's id.
const UserIDKey ContextKey = "user_id"

// Auth returns middleware that requires a valid Bearer token and stores the
// caller's user id on the request context.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Unauthorized(w, "missing authorization header")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				response.Unauthorized(w, "authorization header must be a Bearer token")
				return
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user's id from the context.
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}

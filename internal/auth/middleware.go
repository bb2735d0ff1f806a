package auth

import (
	"context"
	"net/http"
	"strings"

	"gigboard/marketplace-service/internal/httpapi"
)

type contextKey struct{}

var userIDKey contextKey

// Middleware verifies the Authorization: Bearer header and stores the caller's
// user id in the request context. Requests without a valid token get a 401
// envelope and never reach the handler.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			httpapi.Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := a.VerifyToken(tokenStr)
		if err != nil {
			httpapi.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated caller's user id stored by Middleware.
// Empty when the request skipped authentication.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

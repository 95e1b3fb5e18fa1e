package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/spaceblaster/scorekeeper/internal/api/apierr"
	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/services/auth"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Auth creates authentication middleware. It resolves the bearer token to
// an identity via the auth gateway and rejects requests without one.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := authService.CurrentIdentity(extractToken(r))
			if identity == "" {
				apierr.WriteError(w, apierr.NewUnauthenticatedError())
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetIdentity returns the authenticated identity from the request context,
// or the empty identity when the auth middleware was not applied
func GetIdentity(ctx context.Context) model.UserID {
	identity, _ := ctx.Value(identityContextKey).(model.UserID)
	return identity
}

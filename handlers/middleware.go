package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskflow/taskflow-api/services"
)

type contextKey string

const claimsContextKey contextKey = "claims"

type AuthMiddleware struct {
	authService *services.AuthService
}

func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Auth rejects requests without a valid bearer token and stores the
// verified claims in the request context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		authParts := strings.Split(authHeader, " ")
		if len(authParts) != 2 || authParts[0] != "Bearer" {
			http.Error(w, "invalid authorization format", http.StatusUnauthorized)
			return
		}

		claims, err := m.authService.VerifyToken(authParts[1])
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerFrom returns the verified identity placed in the context by Auth.
func callerFrom(r *http.Request) (*services.Claims, bool) {
	claims, ok := r.Context().Value(claimsContextKey).(*services.Claims)
	return claims, ok
}

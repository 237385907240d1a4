package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/quickpoll/api/internal/core/ports"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

type AuthMiddleware struct {
	creds ports.CredentialService
}

func NewAuthMiddleware(creds ports.CredentialService) *AuthMiddleware {
	return &AuthMiddleware{creds: creds}
}

// Authenticate gates a route group on a valid bearer token and stores the
// token payload in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, kindUnauthorized, "not authenticated")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		payload, err := m.creds.DecodeToken(token)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, kindUnauthorized, "could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, payload.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, payload.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

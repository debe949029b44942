// Package middleware holds HTTP middleware for the API router.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/ports"

	"github.com/rs/zerolog"
)

// UserLoader resolves a user ID to the stored user
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// RequireAuth verifies the bearer token and loads the authenticated user into
// the request context. Requests without a valid token get a 401.
func RequireAuth(tokens ports.TokenService, users UserLoader, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w)
				return
			}

			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				logger.Error().Err(err).Str("userId", userID).Msg("Failed to load user for token")
				unauthorized(w)
				return
			}
			if user == nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": domain.ErrUnauthorized.Error()})
}

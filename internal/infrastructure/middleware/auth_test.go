package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/infrastructure/middleware"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct{}

func (staticTokens) Issue(userID string) (string, error) { return "valid-token", nil }

func (staticTokens) Verify(token string) (string, error) {
	if token != "valid-token" {
		return "", domain.ErrUnauthorized
	}
	return "user-1", nil
}

type staticUsers struct {
	user *domain.User
}

func (s staticUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func TestRequireAuthLoadsUserIntoContext(t *testing.T) {
	user := &domain.User{ID: "user-1", Email: "jane@example.com"}
	handler := middleware.RequireAuth(staticTokens{}, staticUsers{user: user}, zerolog.Nop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := domain.UserFromContext(r.Context())
			require.NotNil(t, got)
			assert.Equal(t, "jane@example.com", got.Email)
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthRejections(t *testing.T) {
	cases := map[string]struct {
		header string
		users  staticUsers
	}{
		"missing header":  {header: "", users: staticUsers{user: &domain.User{ID: "user-1"}}},
		"not bearer":      {header: "Basic abc", users: staticUsers{user: &domain.User{ID: "user-1"}}},
		"invalid token":   {header: "Bearer forged", users: staticUsers{user: &domain.User{ID: "user-1"}}},
		"deleted user":    {header: "Bearer valid-token", users: staticUsers{}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			called := false
			handler := middleware.RequireAuth(staticTokens{}, tc.users, zerolog.Nop())(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }),
			)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

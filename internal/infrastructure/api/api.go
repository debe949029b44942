// Package api holds the REST handlers behind the /api router.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"pulseboard-analytics-core/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// validate checks request DTO tags; shared across handlers
var validate = validator.New()

// Handlers bundles the services the REST surface dispatches into
type Handlers struct {
	Auth         *AuthHandler
	Costs        *CostHandler
	Dashboard    *DashboardHandler
	Integrations *IntegrationHandler
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps domain errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var upstreamErr *domain.UpstreamAuthError
	var cryptoErr *domain.CryptoError

	switch {
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrWorkspaceRequired),
		errors.Is(err, domain.ErrNoAdAccount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &upstreamErr):
		writeError(w, http.StatusInternalServerError, upstreamErr.Error())
	case errors.As(err, &cryptoErr):
		logger.Error().Err(err).Msg("Vault failure")
		writeError(w, http.StatusInternalServerError, "internal server error")
	default:
		logger.Error().Err(err).Msg("Request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeAndValidate parses a JSON body into dst and runs validator tags
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return validate.Struct(dst)
}

// workspaceID pulls the required workspaceId query parameter
func workspaceID(r *http.Request) (string, error) {
	id := r.URL.Query().Get("workspaceId")
	if id == "" {
		return "", domain.ErrWorkspaceRequired
	}
	return id, nil
}

package api

import (
	"net/http"

	"pulseboard-analytics-core/internal/application"
	"pulseboard-analytics-core/internal/domain"

	"github.com/rs/zerolog"
)

// AuthHandler serves the /api/auth endpoints
type AuthHandler struct {
	authService *application.AuthService
	logger      zerolog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *application.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

type registerRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	WorkspaceName string `json:"workspaceName"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userPayload is the user shape embedded in auth responses
type userPayload struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	ActiveWorkspace *domain.Workspace `json:"activeWorkspace"`
}

func userPayloadFrom(result *application.AuthResult) userPayload {
	return userPayload{
		ID:              result.User.ID,
		Name:            result.User.Name,
		Email:           result.User.Email,
		ActiveWorkspace: result.Workspace,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authService.Register(r.Context(), application.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		WorkspaceName: req.WorkspaceName,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":              result.User.ID,
		"name":            result.User.Name,
		"email":           result.User.Email,
		"activeWorkspace": result.Workspace,
		"token":           result.Token,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    userPayloadFrom(result),
		"token":   result.Token,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())
	if user == nil {
		writeServiceError(w, h.logger, domain.ErrUnauthorized)
		return
	}

	result, err := h.authService.Profile(r.Context(), user)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    userPayloadFrom(result),
	})
}

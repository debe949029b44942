package api

import (
	"net/http"

	"pulseboard-analytics-core/internal/application"
	"pulseboard-analytics-core/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// IntegrationHandler serves the /api/integrations endpoints
type IntegrationHandler struct {
	integrationService *application.IntegrationService
	logger             zerolog.Logger
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(integrationService *application.IntegrationService, logger zerolog.Logger) *IntegrationHandler {
	return &IntegrationHandler{integrationService: integrationService, logger: logger}
}

type connectMetaRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

type connectShopifyRequest struct {
	ShopURL     string `json:"shopUrl" validate:"required"`
	AccessToken string `json:"accessToken" validate:"required"`
}

// Status handles GET /api/integrations/status
func (h *IntegrationHandler) Status(w http.ResponseWriter, r *http.Request) {
	wsID, err := workspaceID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	status, err := h.integrationService.Status(r.Context(), wsID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// ConnectMeta handles POST /api/integrations/meta/connect
func (h *IntegrationHandler) ConnectMeta(w http.ResponseWriter, r *http.Request) {
	wsID, err := workspaceID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var req connectMetaRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.integrationService.ConnectMeta(r.Context(), wsID, req.AccessToken)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// ConnectShopify handles POST /api/integrations/shopify/connect
func (h *IntegrationHandler) ConnectShopify(w http.ResponseWriter, r *http.Request) {
	wsID, err := workspaceID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var req connectShopifyRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.integrationService.ConnectShopify(r.Context(), wsID, req.ShopURL, req.AccessToken)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// Disconnect handles POST /api/integrations/{platform}/disconnect
func (h *IntegrationHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	wsID, err := workspaceID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	platform := domain.Platform(chi.URLParam(r, "platform"))
	if !platform.Valid() {
		writeError(w, http.StatusBadRequest, "unknown platform")
		return
	}

	if err := h.integrationService.Disconnect(r.Context(), wsID, platform); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

package api

import (
	"net/http"

	"pulseboard-analytics-core/internal/application"

	"github.com/rs/zerolog"
)

// DashboardHandler serves the /api/metrics endpoints
type DashboardHandler struct {
	dashboardService *application.DashboardService
	logger           zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *application.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// Main handles GET /api/metrics
func (h *DashboardHandler) Main(w http.ResponseWriter, r *http.Request) {
	wsID, err := workspaceID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "30d"
	}

	result, err := h.dashboardService.MainMetrics(r.Context(), wsID, period)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Ads handles GET /api/metrics/ads
func (h *DashboardHandler) Ads(w http.ResponseWriter, r *http.Request) {
	wsID, err := workspaceID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	result, err := h.dashboardService.AdsMetrics(r.Context(), wsID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Website handles GET /api/metrics/website
func (h *DashboardHandler) Website(w http.ResponseWriter, r *http.Request) {
	wsID, err := workspaceID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	result, err := h.dashboardService.WebsiteMetrics(r.Context(), wsID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

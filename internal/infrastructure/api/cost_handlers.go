package api

import (
	"net/http"

	"pulseboard-analytics-core/internal/application"
	"pulseboard-analytics-core/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CostHandler serves the /api/costs endpoints
type CostHandler struct {
	costService *application.CostService
	logger      zerolog.Logger
}

// NewCostHandler creates a new cost handler
func NewCostHandler(costService *application.CostService, logger zerolog.Logger) *CostHandler {
	return &CostHandler{costService: costService, logger: logger}
}

type createCostRequest struct {
	Category  string  `json:"category" validate:"required,oneof=shipping packaging commissions salaries ad-spend tools other"`
	Name      string  `json:"name" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Frequency string  `json:"frequency" validate:"omitempty,oneof=one-time monthly yearly"`
}

// List handles GET /api/costs
func (h *CostHandler) List(w http.ResponseWriter, r *http.Request) {
	wsID, err := workspaceID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	costs, err := h.costService.List(r.Context(), wsID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if costs == nil {
		costs = []*domain.Cost{}
	}

	writeJSON(w, http.StatusOK, costs)
}

// Create handles POST /api/costs
func (h *CostHandler) Create(w http.ResponseWriter, r *http.Request) {
	wsID, err := workspaceID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var req createCostRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cost, err := h.costService.Create(r.Context(), wsID, application.CreateCostInput{
		Category:  domain.CostCategory(req.Category),
		Name:      req.Name,
		Amount:    req.Amount,
		Frequency: domain.CostFrequency(req.Frequency),
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, cost)
}

// Delete handles DELETE /api/costs/{id}
func (h *CostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.costService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Cost removed"})
}

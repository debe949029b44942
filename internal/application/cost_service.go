package application

import (
	"context"
	"time"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/ports"

	"github.com/rs/zerolog"
)

// CostService handles workspace-scoped cost entries
type CostService struct {
	costRepo ports.CostRepository
	logger   zerolog.Logger
}

// NewCostService creates a new cost service
func NewCostService(costRepo ports.CostRepository, logger zerolog.Logger) *CostService {
	return &CostService{
		costRepo: costRepo,
		logger:   logger,
	}
}

// CreateCostInput is the input for adding a cost entry
type CreateCostInput struct {
	Category  domain.CostCategory
	Name      string
	Amount    float64
	Frequency domain.CostFrequency
}

// Create adds a cost entry to a workspace
func (s *CostService) Create(ctx context.Context, workspaceID string, input CreateCostInput) (*domain.Cost, error) {
	frequency := input.Frequency
	if frequency == "" {
		frequency = domain.FrequencyMonthly
	}

	cost := &domain.Cost{
		WorkspaceID: workspaceID,
		Category:    input.Category,
		Name:        input.Name,
		Amount:      input.Amount,
		Frequency:   frequency,
		Date:        time.Now(),
	}
	if err := s.costRepo.Create(ctx, cost); err != nil {
		return nil, err
	}
	return cost, nil
}

// List retrieves a workspace's cost entries, newest first
func (s *CostService) List(ctx context.Context, workspaceID string) ([]*domain.Cost, error) {
	return s.costRepo.ListByWorkspace(ctx, workspaceID)
}

// Delete removes a cost entry by ID
func (s *CostService) Delete(ctx context.Context, id string) error {
	return s.costRepo.Delete(ctx, id)
}

package ports

import (
	"context"

	"pulseboard-analytics-core/internal/domain"
)

// IntegrationRepository defines the interface for integration persistence.
// Records are unique on the (workspace, platform) pair.
type IntegrationRepository interface {
	// Upsert inserts or replaces the record keyed by (workspace, platform)
	Upsert(ctx context.Context, integration *domain.Integration) (*domain.Integration, error)

	// FindActive retrieves every integration with isActive = true
	FindActive(ctx context.Context) ([]*domain.Integration, error)

	// FindByWorkspace retrieves all integrations for a workspace
	FindByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Integration, error)

	// UpdateSyncState records the outcome of a sync run on the integration
	UpdateSyncState(ctx context.Context, id string, active bool) error

	// Delete removes the integration for a (workspace, platform) pair
	Delete(ctx context.Context, workspaceID string, platform domain.Platform) error
}

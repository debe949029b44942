package ports

import (
	"context"
	"time"

	"pulseboard-analytics-core/internal/domain"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// WorkspaceRepository defines the interface for workspace persistence
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *domain.Workspace) error
	GetByID(ctx context.Context, id string) (*domain.Workspace, error)
}

// CostRepository defines the interface for cost entry persistence
type CostRepository interface {
	Create(ctx context.Context, cost *domain.Cost) error
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Cost, error)
	Delete(ctx context.Context, id string) error
}

// SnapshotRepository defines the interface for daily metric snapshot
// persistence. Upsert is keyed by (workspace, platform, day) so re-syncing a
// day overwrites rather than duplicates.
type SnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *domain.MetricSnapshot) error
	FindRange(ctx context.Context, workspaceID string, platform domain.Platform, from, to time.Time) ([]*domain.MetricSnapshot, error)
}

package domain

import "time"

// User is a registered dashboard user
type User struct {
	ID                string    `json:"id" bson:"_id"`
	Name              string    `json:"name" bson:"name"`
	Email             string    `json:"email" bson:"email"` // unique
	PasswordHash      string    `json:"-" bson:"passwordHash"`
	WorkspaceIDs      []string  `json:"workspace_ids" bson:"workspaces"`
	ActiveWorkspaceID string    `json:"active_workspace_id" bson:"activeWorkspace"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}

// WorkspaceRole controls what a member may do inside a workspace
type WorkspaceRole string

const (
	RoleAdmin  WorkspaceRole = "admin"
	RoleViewer WorkspaceRole = "viewer"
)

// WorkspaceMember is one user's membership in a workspace
type WorkspaceMember struct {
	UserID string        `json:"user_id" bson:"user"`
	Role   WorkspaceRole `json:"role" bson:"role"`
}

// WorkspaceSettings holds per-tenant display preferences
type WorkspaceSettings struct {
	Currency string `json:"currency" bson:"currency"`
}

// Workspace is the tenant boundary: costs, integrations and snapshots are all
// scoped to exactly one workspace
type Workspace struct {
	ID        string            `json:"id" bson:"_id"`
	Name      string            `json:"name" bson:"name"`
	OwnerID   string            `json:"owner_id" bson:"owner"`
	Members   []WorkspaceMember `json:"members" bson:"members"`
	Settings  WorkspaceSettings `json:"settings" bson:"settings"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

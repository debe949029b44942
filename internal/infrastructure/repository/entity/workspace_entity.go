package entity

import (
	"time"

	"pulseboard-analytics-core/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoWorkspaceMemberDoc is one membership entry inside a workspace document
type MongoWorkspaceMemberDoc struct {
	UserID primitive.ObjectID `bson:"user"`
	Role   string             `bson:"role"`
}

// MongoWorkspaceDoc represents a workspace in MongoDB
type MongoWorkspaceDoc struct {
	ID        primitive.ObjectID        `bson:"_id,omitempty"`
	Name      string                    `bson:"name"`
	Owner     primitive.ObjectID        `bson:"owner"`
	Members   []MongoWorkspaceMemberDoc `bson:"members"`
	Settings  struct {
		Currency string `bson:"currency"`
	} `bson:"settings"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoWorkspaceDoc) ToDomain() *domain.Workspace {
	members := make([]domain.WorkspaceMember, 0, len(d.Members))
	for _, m := range d.Members {
		members = append(members, domain.WorkspaceMember{
			UserID: m.UserID.Hex(),
			Role:   domain.WorkspaceRole(m.Role),
		})
	}

	return &domain.Workspace{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		OwnerID:   d.Owner.Hex(),
		Members:   members,
		Settings:  domain.WorkspaceSettings{Currency: d.Settings.Currency},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoWorkspaceDocFromDomain converts a domain entity to a MongoDB document
func MongoWorkspaceDocFromDomain(workspace *domain.Workspace) *MongoWorkspaceDoc {
	doc := &MongoWorkspaceDoc{
		Name:      workspace.Name,
		Members:   make([]MongoWorkspaceMemberDoc, 0, len(workspace.Members)),
		CreatedAt: workspace.CreatedAt,
		UpdatedAt: workspace.UpdatedAt,
	}
	doc.Settings.Currency = workspace.Settings.Currency

	if objID, err := primitive.ObjectIDFromHex(workspace.OwnerID); err == nil {
		doc.Owner = objID
	}
	for _, m := range workspace.Members {
		if objID, err := primitive.ObjectIDFromHex(m.UserID); err == nil {
			doc.Members = append(doc.Members, MongoWorkspaceMemberDoc{
				UserID: objID,
				Role:   string(m.Role),
			})
		}
	}
	if workspace.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(workspace.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}

package entity

import (
	"time"

	"pulseboard-analytics-core/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoUserDoc represents a user in MongoDB
type MongoUserDoc struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	Name            string               `bson:"name"`
	Email           string               `bson:"email"`
	PasswordHash    string               `bson:"passwordHash"`
	Workspaces      []primitive.ObjectID `bson:"workspaces"`
	ActiveWorkspace primitive.ObjectID   `bson:"activeWorkspace,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoUserDoc) ToDomain() *domain.User {
	workspaceIDs := make([]string, 0, len(d.Workspaces))
	for _, id := range d.Workspaces {
		workspaceIDs = append(workspaceIDs, id.Hex())
	}

	user := &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		WorkspaceIDs: workspaceIDs,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if !d.ActiveWorkspace.IsZero() {
		user.ActiveWorkspaceID = d.ActiveWorkspace.Hex()
	}
	return user
}

// MongoUserDocFromDomain converts a domain entity to a MongoDB document
func MongoUserDocFromDomain(user *domain.User) *MongoUserDoc {
	doc := &MongoUserDoc{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Workspaces:   make([]primitive.ObjectID, 0, len(user.WorkspaceIDs)),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	for _, id := range user.WorkspaceIDs {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			doc.Workspaces = append(doc.Workspaces, objID)
		}
	}
	if user.ActiveWorkspaceID != "" {
		if objID, err := primitive.ObjectIDFromHex(user.ActiveWorkspaceID); err == nil {
			doc.ActiveWorkspace = objID
		}
	}
	if user.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(user.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}

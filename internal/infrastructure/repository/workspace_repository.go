package repository

import (
	"context"
	"fmt"
	"time"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/infrastructure/repository/entity"
	"pulseboard-analytics-core/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoWorkspaceRepository implements WorkspaceRepository using MongoDB
type MongoWorkspaceRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkspaceRepository creates a new MongoDB workspace repository
func NewMongoWorkspaceRepository(db *mongo.Database) ports.WorkspaceRepository {
	return &MongoWorkspaceRepository{
		collection: db.Collection("workspaces"),
	}
}

// Create creates a new workspace and fills in its generated ID
func (r *MongoWorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	doc := entity.MongoWorkspaceDocFromDomain(workspace)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	if objID, ok := result.InsertedID.(primitive.ObjectID); ok {
		workspace.ID = objID.Hex()
	}
	workspace.CreatedAt = doc.CreatedAt
	workspace.UpdatedAt = doc.UpdatedAt
	return nil
}

// GetByID retrieves a workspace by ID
func (r *MongoWorkspaceRepository) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid workspace id: %w", err)
	}

	var doc entity.MongoWorkspaceDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return doc.ToDomain(), nil
}

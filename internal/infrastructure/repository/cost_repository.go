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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCostRepository implements CostRepository using MongoDB
type MongoCostRepository struct {
	collection *mongo.Collection
}

// NewMongoCostRepository creates a new MongoDB cost repository
func NewMongoCostRepository(db *mongo.Database) ports.CostRepository {
	return &MongoCostRepository{
		collection: db.Collection("costs"),
	}
}

// Create creates a new cost entry and fills in its generated ID
func (r *MongoCostRepository) Create(ctx context.Context, cost *domain.Cost) error {
	doc := entity.MongoCostDocFromDomain(cost)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	if doc.Date.IsZero() {
		doc.Date = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create cost: %w", err)
	}

	if objID, ok := result.InsertedID.(primitive.ObjectID); ok {
		cost.ID = objID.Hex()
	}
	cost.Date = doc.Date
	cost.CreatedAt = doc.CreatedAt
	cost.UpdatedAt = doc.UpdatedAt
	return nil
}

// ListByWorkspace retrieves a workspace's cost entries, newest first
func (r *MongoCostRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Cost, error) {
	filter := bson.M{"workspace": workspaceID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list costs: %w", err)
	}
	defer cursor.Close(ctx)

	var costs []*domain.Cost
	for cursor.Next(ctx) {
		var doc entity.MongoCostDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode cost: %w", err)
		}
		costs = append(costs, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return costs, nil
}

// Delete removes a cost entry by ID
func (r *MongoCostRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid cost id: %w", err)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete cost: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

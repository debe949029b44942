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

// MongoIntegrationRepository implements IntegrationRepository using MongoDB
type MongoIntegrationRepository struct {
	collection *mongo.Collection
}

// NewMongoIntegrationRepository creates a new MongoDB integration repository
func NewMongoIntegrationRepository(db *mongo.Database) ports.IntegrationRepository {
	return &MongoIntegrationRepository{
		collection: db.Collection("integrations"),
	}
}

// Upsert inserts or replaces the record keyed by the unique (workspace,
// platform) pair and returns the stored document
func (r *MongoIntegrationRepository) Upsert(ctx context.Context, integration *domain.Integration) (*domain.Integration, error) {
	doc := entity.MongoIntegrationDocFromDomain(integration)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	// Ensure the uniqueness invariant: at most one record per (workspace, platform)
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "workspace", Value: 1}, {Key: "platform", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = r.collection.Indexes().CreateOne(ctx, indexModel)

	filter := bson.M{
		"workspace": integration.WorkspaceID,
		"platform":  string(integration.Platform),
	}
	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored entity.MongoIntegrationDoc
	if err := r.collection.FindOneAndReplace(ctx, filter, doc, opts).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to upsert integration: %w", err)
	}

	return stored.ToDomain(), nil
}

// FindActive retrieves every integration with isActive = true
func (r *MongoIntegrationRepository) FindActive(ctx context.Context) ([]*domain.Integration, error) {
	return r.find(ctx, bson.M{"isActive": true})
}

// FindByWorkspace retrieves all integrations for a workspace
func (r *MongoIntegrationRepository) FindByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Integration, error) {
	return r.find(ctx, bson.M{"workspace": workspaceID})
}

func (r *MongoIntegrationRepository) find(ctx context.Context, filter bson.M) ([]*domain.Integration, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list integrations: %w", err)
	}
	defer cursor.Close(ctx)

	var integrations []*domain.Integration
	for cursor.Next(ctx) {
		var doc entity.MongoIntegrationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode integration: %w", err)
		}
		integrations = append(integrations, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return integrations, nil
}

// UpdateSyncState records the outcome of a sync run on the integration
func (r *MongoIntegrationRepository) UpdateSyncState(ctx context.Context, id string, active bool) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid integration id: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"lastSyncAt": time.Now(),
		"isActive":   active,
		"updatedAt":  time.Now(),
	}}
	if _, err := r.collection.UpdateByID(ctx, objID, update); err != nil {
		return fmt.Errorf("failed to update sync state: %w", err)
	}

	return nil
}

// Delete removes the integration for a (workspace, platform) pair
func (r *MongoIntegrationRepository) Delete(ctx context.Context, workspaceID string, platform domain.Platform) error {
	filter := bson.M{
		"workspace": workspaceID,
		"platform":  string(platform),
	}
	if _, err := r.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete integration: %w", err)
	}
	return nil
}

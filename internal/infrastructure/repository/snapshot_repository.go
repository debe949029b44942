package repository

import (
	"context"
	"fmt"
	"time"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/infrastructure/repository/entity"
	"pulseboard-analytics-core/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSnapshotRepository implements SnapshotRepository using MongoDB
type MongoSnapshotRepository struct {
	collection *mongo.Collection
}

// NewMongoSnapshotRepository creates a new MongoDB snapshot repository
func NewMongoSnapshotRepository(db *mongo.Database) ports.SnapshotRepository {
	return &MongoSnapshotRepository{
		collection: db.Collection("metric_snapshots"),
	}
}

// Upsert saves one day's snapshot keyed by (workspace, platform, day).
// Re-syncing the same day overwrites the row rather than duplicating it.
func (r *MongoSnapshotRepository) Upsert(ctx context.Context, snapshot *domain.MetricSnapshot) error {
	snapshot.Date = domain.DayOf(snapshot.Date)

	doc := entity.MongoSnapshotDocFromDomain(snapshot)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "workspace", Value: 1}, {Key: "platform", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = r.collection.Indexes().CreateOne(ctx, indexModel)

	filter := bson.M{
		"workspace": snapshot.WorkspaceID,
		"platform":  string(snapshot.Platform),
		"date":      snapshot.Date,
	}
	update := bson.M{"$set": bson.M{
		"data":      doc.Data,
		"updatedAt": doc.UpdatedAt,
	}, "$setOnInsert": bson.M{
		"workspace": doc.WorkspaceID,
		"platform":  doc.Platform,
		"date":      doc.Date,
		"createdAt": doc.CreatedAt,
	}}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

// FindRange retrieves snapshots for a workspace and platform within [from, to],
// newest first
func (r *MongoSnapshotRepository) FindRange(ctx context.Context, workspaceID string, platform domain.Platform, from, to time.Time) ([]*domain.MetricSnapshot, error) {
	filter := bson.M{
		"workspace": workspaceID,
		"platform":  string(platform),
		"date": bson.M{
			"$gte": domain.DayOf(from),
			"$lte": domain.DayOf(to),
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var snapshots []*domain.MetricSnapshot
	for cursor.Next(ctx) {
		var doc entity.MongoSnapshotDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
		snapshots = append(snapshots, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return snapshots, nil
}

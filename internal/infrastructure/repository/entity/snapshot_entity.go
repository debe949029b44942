package entity

import (
	"time"

	"pulseboard-analytics-core/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoSnapshotDataDoc is the tagged per-platform metric payload. Exactly one
// branch is set, matching the snapshot's platform.
type MongoSnapshotDataDoc struct {
	Ads   *domain.AdsMetrics   `bson:"ads,omitempty"`
	Store *domain.StoreMetrics `bson:"store,omitempty"`
}

// MongoSnapshotDoc represents a daily metric snapshot in MongoDB
type MongoSnapshotDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	WorkspaceID string               `bson:"workspace"`
	Platform    string               `bson:"platform"`
	Date        time.Time            `bson:"date"`
	Data        MongoSnapshotDataDoc `bson:"data"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSnapshotDoc) ToDomain() *domain.MetricSnapshot {
	return &domain.MetricSnapshot{
		ID:          d.ID.Hex(),
		WorkspaceID: d.WorkspaceID,
		Platform:    domain.Platform(d.Platform),
		Date:        d.Date,
		Data: domain.SnapshotData{
			Ads:   d.Data.Ads,
			Store: d.Data.Store,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoSnapshotDocFromDomain converts a domain entity to a MongoDB document
func MongoSnapshotDocFromDomain(snapshot *domain.MetricSnapshot) *MongoSnapshotDoc {
	doc := &MongoSnapshotDoc{
		WorkspaceID: snapshot.WorkspaceID,
		Platform:    string(snapshot.Platform),
		Date:        snapshot.Date,
		Data: MongoSnapshotDataDoc{
			Ads:   snapshot.Data.Ads,
			Store: snapshot.Data.Store,
		},
		CreatedAt: snapshot.CreatedAt,
		UpdatedAt: snapshot.UpdatedAt,
	}

	if snapshot.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(snapshot.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}

package entity

import (
	"time"

	"pulseboard-analytics-core/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoCostDoc represents a cost entry in MongoDB
type MongoCostDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	WorkspaceID string             `bson:"workspace"`
	Category    string             `bson:"category"`
	Name        string             `bson:"name"`
	Amount      float64            `bson:"amount"`
	Frequency   string             `bson:"frequency"`
	Date        time.Time          `bson:"date"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoCostDoc) ToDomain() *domain.Cost {
	return &domain.Cost{
		ID:          d.ID.Hex(),
		WorkspaceID: d.WorkspaceID,
		Category:    domain.CostCategory(d.Category),
		Name:        d.Name,
		Amount:      d.Amount,
		Frequency:   domain.CostFrequency(d.Frequency),
		Date:        d.Date,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoCostDocFromDomain converts a domain entity to a MongoDB document
func MongoCostDocFromDomain(cost *domain.Cost) *MongoCostDoc {
	doc := &MongoCostDoc{
		WorkspaceID: cost.WorkspaceID,
		Category:    string(cost.Category),
		Name:        cost.Name,
		Amount:      cost.Amount,
		Frequency:   string(cost.Frequency),
		Date:        cost.Date,
		CreatedAt:   cost.CreatedAt,
		UpdatedAt:   cost.UpdatedAt,
	}

	if cost.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(cost.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}

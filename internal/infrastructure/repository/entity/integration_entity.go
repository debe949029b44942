package entity

import (
	"time"

	"pulseboard-analytics-core/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoCredentialsDoc embeds the encrypted token blob inside an integration
type MongoCredentialsDoc struct {
	AccessToken string `bson:"accessToken,omitempty"`
	IV          string `bson:"iv,omitempty"`
	AdAccountID string `bson:"adAccountId,omitempty"`
	ShopURL     string `bson:"shopUrl,omitempty"`
	PropertyID  string `bson:"propertyId,omitempty"`
}

// MongoIntegrationDoc represents an integration in MongoDB
type MongoIntegrationDoc struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	WorkspaceID string              `bson:"workspace"`
	Platform    string              `bson:"platform"`
	IsActive    bool                `bson:"isActive"`
	PlatformID  string              `bson:"platformId,omitempty"`
	Credentials MongoCredentialsDoc `bson:"credentials"`
	LastSyncAt  *time.Time          `bson:"lastSyncAt,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoIntegrationDoc) ToDomain() *domain.Integration {
	return &domain.Integration{
		ID:          d.ID.Hex(),
		WorkspaceID: d.WorkspaceID,
		Platform:    domain.Platform(d.Platform),
		IsActive:    d.IsActive,
		PlatformID:  d.PlatformID,
		Credentials: domain.Credentials{
			AccessToken: d.Credentials.AccessToken,
			IV:          d.Credentials.IV,
			AdAccountID: d.Credentials.AdAccountID,
			ShopURL:     d.Credentials.ShopURL,
			PropertyID:  d.Credentials.PropertyID,
		},
		LastSyncAt: d.LastSyncAt,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// MongoIntegrationDocFromDomain converts a domain entity to a MongoDB document
func MongoIntegrationDocFromDomain(integration *domain.Integration) *MongoIntegrationDoc {
	doc := &MongoIntegrationDoc{
		WorkspaceID: integration.WorkspaceID,
		Platform:    string(integration.Platform),
		IsActive:    integration.IsActive,
		PlatformID:  integration.PlatformID,
		Credentials: MongoCredentialsDoc{
			AccessToken: integration.Credentials.AccessToken,
			IV:          integration.Credentials.IV,
			AdAccountID: integration.Credentials.AdAccountID,
			ShopURL:     integration.Credentials.ShopURL,
			PropertyID:  integration.Credentials.PropertyID,
		},
		LastSyncAt: integration.LastSyncAt,
		CreatedAt:  integration.CreatedAt,
		UpdatedAt:  integration.UpdatedAt,
	}

	if integration.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(integration.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}

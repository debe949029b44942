package domain

import "time"

// Platform identifies an external ads/analytics platform
type Platform string

const (
	PlatformShopify  Platform = "shopify"
	PlatformMetaAds  Platform = "meta-ads"
	PlatformGoogleGA Platform = "google-analytics"
)

// KnownPlatforms lists every platform an integration can be stored for
var KnownPlatforms = []Platform{PlatformShopify, PlatformMetaAds, PlatformGoogleGA}

// Valid reports whether the platform is one we know how to store
func (p Platform) Valid() bool {
	for _, known := range KnownPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

// EncryptedSecret is a ciphertext/IV pair produced by the credential vault.
// Plaintext tokens never leave the vault boundary except inside the sync path.
type EncryptedSecret struct {
	Ciphertext string `json:"ciphertext" bson:"ciphertext"`
	IV         string `json:"iv" bson:"iv"`
}

// Credentials holds the encrypted access token plus the plaintext identifiers
// needed to address the external account on each sync
type Credentials struct {
	AccessToken string `json:"-" bson:"accessToken"` // ciphertext, never plaintext
	IV          string `json:"-" bson:"iv"`
	AdAccountID string `json:"ad_account_id,omitempty" bson:"adAccountId,omitempty"`
	ShopURL     string `json:"shop_url,omitempty" bson:"shopUrl,omitempty"`
	PropertyID  string `json:"property_id,omitempty" bson:"propertyId,omitempty"`
}

// Integration represents a stored connection between one workspace and one
// external platform. At most one record exists per (workspace, platform).
type Integration struct {
	ID          string      `json:"id" bson:"_id"`
	WorkspaceID string      `json:"workspace_id" bson:"workspace"`
	Platform    Platform    `json:"platform" bson:"platform"`
	IsActive    bool        `json:"is_active" bson:"isActive"`
	PlatformID  string      `json:"platform_id,omitempty" bson:"platformId,omitempty"` // external user/account identifier
	Credentials Credentials `json:"-" bson:"credentials"`
	LastSyncAt  *time.Time  `json:"last_sync_at,omitempty" bson:"lastSyncAt,omitempty"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}

// IntegrationStatus reports which platforms are actively connected for a workspace
type IntegrationStatus struct {
	Shopify bool `json:"shopify"`
	Meta    bool `json:"meta"`
	Google  bool `json:"google"`
}

package ports

import (
	"context"

	"pulseboard-analytics-core/internal/domain"
)

// AccountIdentity is the external platform's view of the connected user
type AccountIdentity struct {
	ID   string
	Name string
}

// AdAccount is one advertising account reachable by a platform token
type AdAccount struct {
	ID     string
	Name   string
	Status int // 1 = active on Meta
}

// MetaClient talks to the Meta Graph API
type MetaClient interface {
	// ExchangeLongLivedToken trades a short-lived user token for a ~60 day one
	ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (string, error)

	// GetAccountIdentity validates the token and returns the platform user
	GetAccountIdentity(ctx context.Context, accessToken string) (*AccountIdentity, error)

	// ListAdAccounts lists ad accounts reachable by the token. An empty list
	// is a valid result, not an error.
	ListAdAccounts(ctx context.Context, accessToken string) ([]AdAccount, error)

	// GetDailyInsights fetches a trailing window of normalized daily rows.
	// Upstream failures degrade to an empty slice so a platform outage turns
	// the caller's sync into a no-op instead of aborting it.
	GetDailyInsights(ctx context.Context, accessToken, adAccountID string, windowDays int) []domain.DailyInsight
}

// ShopDetails is the storefront identity returned on connect validation
type ShopDetails struct {
	ID   int64
	Name string
	URL  string
}

// StoreClient talks to a storefront platform (Shopify)
type StoreClient interface {
	// ValidateShop checks the token against the shop and returns its identity
	ValidateShop(ctx context.Context, shopURL, accessToken string) (*ShopDetails, error)

	// DailyOrderMetrics aggregates a trailing window of orders into daily
	// rows. Same degrade-to-empty semantics as ads insights.
	DailyOrderMetrics(ctx context.Context, shopURL, accessToken string, windowDays int) []domain.DailyStoreMetrics
}

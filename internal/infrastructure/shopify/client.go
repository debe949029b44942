// Package shopify adapts the go-shopify SDK to the storefront client port:
// token validation on connect and daily order aggregation for sync.
package shopify

import (
	"context"
	"fmt"
	"math"
	"time"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

type client struct {
	app    goshopify.App
	logger zerolog.Logger
}

// NewClient creates a Shopify client adapter
func NewClient(apiKey, apiSecret string, logger zerolog.Logger) ports.StoreClient {
	return &client{
		app: goshopify.App{
			ApiKey:    apiKey,
			ApiSecret: apiSecret,
		},
		logger: logger,
	}
}

// createClient is a helper to create a goshopify client for one shop
func (c *client) createClient(shopURL string, accessToken string) (*goshopify.Client, error) {
	sc, err := goshopify.NewClient(c.app, shopURL, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return sc, nil
}

// ValidateShop checks the access token against the shop and returns its identity
func (c *client) ValidateShop(ctx context.Context, shopURL, accessToken string) (*ports.ShopDetails, error) {
	sc, err := c.createClient(shopURL, accessToken)
	if err != nil {
		return nil, &domain.UpstreamAuthError{Platform: domain.PlatformShopify, Reason: err.Error()}
	}

	shop, err := sc.Shop.Get(ctx, nil)
	if err != nil {
		return nil, &domain.UpstreamAuthError{Platform: domain.PlatformShopify, Reason: err.Error()}
	}

	return &ports.ShopDetails{
		ID:   int64(shop.Id),
		Name: shop.Name,
		URL:  shop.Domain,
	}, nil
}

// DailyOrderMetrics lists the trailing window of orders and aggregates them
// into one row per day (order count, revenue sum, average order value).
// Upstream failures degrade to an empty slice so a storefront outage turns the
// caller's sync into a no-op for that run instead of aborting it.
func (c *client) DailyOrderMetrics(ctx context.Context, shopURL, accessToken string, windowDays int) []domain.DailyStoreMetrics {
	sc, err := c.createClient(shopURL, accessToken)
	if err != nil {
		c.logger.Warn().Err(err).Str("shop", shopURL).Msg("Order fetch failed, degrading to empty result")
		return []domain.DailyStoreMetrics{}
	}

	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	orders, err := sc.Order.List(ctx, goshopify.OrderListOptions{
		Status: "any",
		ListOptions: goshopify.ListOptions{
			CreatedAtMin: since,
			Limit:        250,
		},
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("shop", shopURL).Msg("Order fetch failed, degrading to empty result")
		return []domain.DailyStoreMetrics{}
	}

	byDay := make(map[time.Time]*domain.StoreMetrics)
	for _, order := range orders {
		if order.CreatedAt == nil {
			continue
		}
		day := domain.DayOf(*order.CreatedAt)
		metrics, ok := byDay[day]
		if !ok {
			metrics = &domain.StoreMetrics{}
			byDay[day] = metrics
		}
		metrics.Orders++
		if order.TotalPrice != nil {
			metrics.Revenue += order.TotalPrice.InexactFloat64()
		}
	}

	daily := make([]domain.DailyStoreMetrics, 0, len(byDay))
	for day, metrics := range byDay {
		if metrics.Orders > 0 {
			metrics.AOV = math.Round(metrics.Revenue/float64(metrics.Orders)*100) / 100
		}
		daily = append(daily, domain.DailyStoreMetrics{Date: day, StoreMetrics: *metrics})
	}
	return daily
}

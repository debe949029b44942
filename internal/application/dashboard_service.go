package application

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/ports"

	"github.com/rs/zerolog"
)

// dashboardCacheTTL bounds staleness of cached dashboard payloads
const dashboardCacheTTL = 5 * time.Minute

// MetricPoint is one headline metric with its period-over-period change
type MetricPoint struct {
	Value   float64   `json:"value"`
	Change  float64   `json:"change"`
	History []float64 `json:"history,omitempty"`
}

// MainMetrics is the dashboard summary card set
type MainMetrics struct {
	Revenue        MetricPoint `json:"revenue"`
	Profit         MetricPoint `json:"profit"`
	Orders         MetricPoint `json:"orders"`
	ROI            MetricPoint `json:"roi"`
	ConversionRate MetricPoint `json:"conversionRate"`
	AOV            MetricPoint `json:"aov"`
}

// PlatformSpend is one ads platform's share of spend
type PlatformSpend struct {
	Name  string  `json:"name"`
	Spend float64 `json:"spend"`
	ROAS  float64 `json:"roas"`
}

// AdsOverview is the paid-ads card set
type AdsOverview struct {
	ROAS      MetricPoint     `json:"roas"`
	CAC       MetricPoint     `json:"cac"`
	Spend     MetricPoint     `json:"spend"`
	Platforms []PlatformSpend `json:"platforms"`
}

// FunnelStage is one step of the conversion funnel
type FunnelStage struct {
	Stage string `json:"stage"`
	Value int64  `json:"value"`
}

// WebsiteOverview is the traffic and funnel card set
type WebsiteOverview struct {
	Sessions      int64         `json:"sessions"`
	BounceRate    float64       `json:"bounceRate"`
	ReturningRate float64       `json:"returningRate"`
	Funnel        []FunnelStage `json:"funnel"`
}

// DashboardService shapes the metric payloads behind the dashboard views
type DashboardService struct {
	snapshotRepo ports.SnapshotRepository
	cache        ports.Cache
	logger       zerolog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(snapshotRepo ports.SnapshotRepository, cache ports.Cache, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		snapshotRepo: snapshotRepo,
		cache:        cache,
		logger:       logger,
	}
}

// MainMetrics returns the summary card set. Until a summary aggregation
// pipeline lands this is representative sample data shaped like the real
// payload.
// TODO: aggregate revenue/profit from store snapshots once Shopify syncs are
// widely connected.
func (s *DashboardService) MainMetrics(ctx context.Context, workspaceID, period string) (*MainMetrics, error) {
	cacheKey := fmt.Sprintf("dashboard:main:%s:%s", workspaceID, period)
	var cached MainMetrics
	if ok := s.fromCache(ctx, cacheKey, &cached); ok {
		return &cached, nil
	}

	result := &MainMetrics{
		Revenue:        MetricPoint{Value: 428500, Change: 12.5, History: []float64{45000, 52000, 48000, 61000, 55000, 67000, 72000}},
		Profit:         MetricPoint{Value: 119500, Change: 8.2, History: []float64{12000, 15000, 13500, 18000, 16000, 21000, 24000}},
		Orders:         MetricPoint{Value: 3847, Change: 15.3},
		ROI:            MetricPoint{Value: 42.8, Change: 5.1},
		ConversionRate: MetricPoint{Value: 3.2, Change: 12.8},
		AOV:            MetricPoint{Value: 114.28, Change: 7.5},
	}

	s.toCache(ctx, cacheKey, result)
	return result, nil
}

// AdsMetrics aggregates the trailing 30 days of synced ads snapshots. When a
// workspace has no snapshots yet it falls back to sample data so the view
// renders before the first sync completes.
func (s *DashboardService) AdsMetrics(ctx context.Context, workspaceID string) (*AdsOverview, error) {
	cacheKey := fmt.Sprintf("dashboard:ads:%s", workspaceID)
	var cached AdsOverview
	if ok := s.fromCache(ctx, cacheKey, &cached); ok {
		return &cached, nil
	}

	now := time.Now().UTC()
	snapshots, err := s.snapshotRepo.FindRange(ctx, workspaceID, domain.PlatformMetaAds, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}

	var result *AdsOverview
	if len(snapshots) == 0 {
		result = sampleAdsOverview()
	} else {
		result = aggregateAds(snapshots)
	}

	s.toCache(ctx, cacheKey, result)
	return result, nil
}

// aggregateAds folds daily ads snapshots into the overview card set
func aggregateAds(snapshots []*domain.MetricSnapshot) *AdsOverview {
	var spend, revenue float64
	for _, snapshot := range snapshots {
		if snapshot.Data.Ads == nil {
			continue
		}
		spend += snapshot.Data.Ads.Spend
		revenue += snapshot.Data.Ads.Revenue
	}

	roas := 0.0
	if spend > 0 {
		roas = math.Round(revenue/spend*100) / 100
	}

	return &AdsOverview{
		ROAS:  MetricPoint{Value: roas},
		CAC:   MetricPoint{},
		Spend: MetricPoint{Value: math.Round(spend*100) / 100},
		Platforms: []PlatformSpend{
			{Name: "Meta", Spend: math.Round(spend*100) / 100, ROAS: roas},
		},
	}
}

func sampleAdsOverview() *AdsOverview {
	return &AdsOverview{
		ROAS:  MetricPoint{Value: 3.8, Change: 12.4},
		CAC:   MetricPoint{Value: 31.50, Change: -8.2},
		Spend: MetricPoint{Value: 55000, Change: 5.8},
		Platforms: []PlatformSpend{
			{Name: "Meta", Spend: 25000, ROAS: 3.8},
			{Name: "Google", Spend: 18000, ROAS: 4.0},
			{Name: "TikTok", Spend: 8000, ROAS: 3.0},
		},
	}
}

// WebsiteMetrics returns the traffic funnel card set (sample data until an
// analytics platform sync lands).
func (s *DashboardService) WebsiteMetrics(ctx context.Context, workspaceID string) (*WebsiteOverview, error) {
	cacheKey := fmt.Sprintf("dashboard:website:%s", workspaceID)
	var cached WebsiteOverview
	if ok := s.fromCache(ctx, cacheKey, &cached); ok {
		return &cached, nil
	}

	result := &WebsiteOverview{
		Sessions:      125000,
		BounceRate:    42.5,
		ReturningRate: 28.5,
		Funnel: []FunnelStage{
			{Stage: "Sessions", Value: 125000},
			{Stage: "Product Views", Value: 87500},
			{Stage: "Add to Cart", Value: 11250},
			{Stage: "Checkout", Value: 6875},
			{Stage: "Purchase", Value: 3750},
		},
	}

	s.toCache(ctx, cacheKey, result)
	return result, nil
}

// InvalidateWorkspace drops every cached dashboard payload for a workspace.
// Called when a sync lands fresh snapshots so views stop serving stale data
// before the TTL runs out.
func (s *DashboardService) InvalidateWorkspace(ctx context.Context, workspaceID string) {
	keys := []string{
		fmt.Sprintf("dashboard:ads:%s", workspaceID),
		fmt.Sprintf("dashboard:website:%s", workspaceID),
	}
	for _, period := range []string{"7d", "30d", "90d"} {
		keys = append(keys, fmt.Sprintf("dashboard:main:%s:%s", workspaceID, period))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn().Err(err).Str("workspaceId", workspaceID).Msg("Failed to invalidate dashboard cache")
	}
}

func (s *DashboardService) fromCache(ctx context.Context, key string, out interface{}) bool {
	cached, err := s.cache.Get(ctx, key)
	if err != nil || cached == nil {
		return false
	}
	return json.Unmarshal(cached, out) == nil
}

func (s *DashboardService) toCache(ctx context.Context, key string, value interface{}) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, encoded, dashboardCacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache dashboard payload")
	}
}

package domain

import "time"

// AdsMetrics is one day of normalized paid-ads performance
type AdsMetrics struct {
	Spend       float64 `json:"spend" bson:"spend"`
	Impressions int64   `json:"impressions" bson:"impressions"`
	Clicks      int64   `json:"clicks" bson:"clicks"`
	Revenue     float64 `json:"revenue" bson:"revenue"`
	ROAS        float64 `json:"roas" bson:"roas"`
	CTR         float64 `json:"ctr" bson:"ctr"`
	CPC         float64 `json:"cpc" bson:"cpc"`
	CPM         float64 `json:"cpm" bson:"cpm"`
}

// DailyInsight is one normalized daily row returned by an ads platform client
type DailyInsight struct {
	Date time.Time `json:"date"`
	AdsMetrics
}

// StoreMetrics is one day of aggregated storefront order performance
type StoreMetrics struct {
	Orders  int64   `json:"orders" bson:"orders"`
	Revenue float64 `json:"revenue" bson:"revenue"`
	AOV     float64 `json:"aov" bson:"aov"`
}

// DailyStoreMetrics is one aggregated day of storefront orders
type DailyStoreMetrics struct {
	Date time.Time `json:"date"`
	StoreMetrics
}

// SnapshotData is the per-platform metric payload of a snapshot. Exactly one
// branch is populated, matching the snapshot's platform.
type SnapshotData struct {
	Ads   *AdsMetrics   `json:"ads,omitempty" bson:"ads,omitempty"`
	Store *StoreMetrics `json:"store,omitempty" bson:"store,omitempty"`
}

// MetricSnapshot is one day's denormalized metric document for one
// (workspace, platform) pair. The (workspace, platform, day) triple is the
// idempotency key: re-syncing a day overwrites, never duplicates.
type MetricSnapshot struct {
	ID          string       `json:"id" bson:"_id"`
	WorkspaceID string       `json:"workspace_id" bson:"workspace"`
	Platform    Platform     `json:"platform" bson:"platform"`
	Date        time.Time    `json:"date" bson:"date"`
	Data        SnapshotData `json:"data" bson:"data"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}

// DayOf truncates a timestamp to UTC day granularity for snapshot keys
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

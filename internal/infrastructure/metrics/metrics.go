// Package metrics exposes Prometheus counters for the sync pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SyncMetrics counts sync pipeline outcomes per platform
type SyncMetrics struct {
	Runs      *prometheus.CounterVec
	Failures  *prometheus.CounterVec
	Snapshots *prometheus.CounterVec
}

// NewSyncMetrics registers the sync counters with the given registerer
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	factory := promauto.With(reg)
	return &SyncMetrics{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Number of integration sync runs, by platform.",
		}, []string{"platform"}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_failures_total",
			Help: "Number of failed integration sync runs, by platform.",
		}, []string{"platform"}),
		Snapshots: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_snapshots_upserted_total",
			Help: "Number of daily metric snapshots written, by platform.",
		}, []string{"platform"}),
	}
}

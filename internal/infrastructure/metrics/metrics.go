package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level Prometheus metrics. HTTP request
// metrics are recorded separately by the router middleware.
type Metrics struct {
	// Asset metrics
	AssetsCreated    prometheus.Counter
	AssetsRegistered prometheus.Counter
	AssetsDisposed   prometheus.Counter

	// Depreciation metrics
	DepreciationRuns      prometheus.Counter
	DepreciationRollbacks prometheus.Counter
	RunDuration           prometheus.Histogram
	RunAssetsSkipped      prometheus.Counter
	EntriesWritten        prometheus.Counter

	// Outbox metrics
	EventsPosted    prometheus.Counter
	EventPostErrors prometheus.Counter
	OutboxBacklog   prometheus.Gauge
	EventsPruned    prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Asset metrics
		AssetsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetbook_assets_created_total",
			Help: "Total number of assets created",
		}),
		AssetsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetbook_assets_registered_total",
			Help: "Total number of assets registered",
		}),
		AssetsDisposed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetbook_assets_disposed_total",
			Help: "Total number of assets disposed",
		}),

		// Depreciation metrics
		DepreciationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetbook_depreciation_runs_total",
			Help: "Total number of depreciation runs",
		}),
		DepreciationRollbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetbook_depreciation_rollbacks_total",
			Help: "Total number of depreciation rollbacks",
		}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "assetbook_depreciation_run_duration_seconds",
			Help:    "Duration of depreciation runs",
			Buckets: prometheus.DefBuckets,
		}),
		RunAssetsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetbook_depreciation_run_assets_skipped_total",
			Help: "Total number of assets skipped during depreciation runs",
		}),
		EntriesWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetbook_depreciation_entries_written_total",
			Help: "Total number of depreciation entries written",
		}),

		// Outbox metrics
		EventsPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetbook_events_posted_total",
			Help: "Total number of journal events posted",
		}),
		EventPostErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetbook_event_post_errors_total",
			Help: "Total number of journal event posting failures",
		}),
		OutboxBacklog: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "assetbook_outbox_backlog",
			Help: "Unpublished journal events waiting in the outbox",
		}),
		EventsPruned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetbook_events_pruned_total",
			Help: "Total number of published journal events pruned",
		}),
	}
}

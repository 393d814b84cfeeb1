package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the sync pipeline.
type Metrics struct {
	SyncCycles    *prometheus.CounterVec // labels: status
	SyncDuration  prometheus.Histogram
	FetchDuration prometheus.Histogram
	SyncRunning   prometheus.Gauge

	RowsStored  prometheus.Gauge
	LastSuccess prometheus.Gauge

	PublishErrors prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SyncCycles,
		m.SyncDuration,
		m.FetchDuration,
		m.SyncRunning,
		m.RowsStored,
		m.LastSuccess,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SyncCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sunshine_sync",
			Name:      "sync_cycles_total",
			Help:      "Completed sync cycles by outcome status.",
		}, []string{"status"}),
		SyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sunshine_sync",
			Name:      "sync_duration_seconds",
			Help:      "Duration of a complete fetch-parse-replace cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sunshine_sync",
			Name:      "fetch_duration_seconds",
			Help:      "Forecast endpoint request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SyncRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sunshine_sync",
			Name:      "sync_running",
			Help:      "1 while a sync cycle holds the lock, 0 otherwise.",
		}),
		RowsStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sunshine_sync",
			Name:      "rows_stored",
			Help:      "Forecast rows written by the last successful replace.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sunshine_sync",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last cycle that replaced the cache.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sunshine_sync",
			Name:      "publish_errors_total",
			Help:      "Snapshot publishes to Kafka that failed.",
		}),
	}
}

package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ledger/internal/metrics"
)

// Collector implements metrics.Recorder for Prometheus.
type Collector struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	accounts   prometheus.Gauge
}

var _ metrics.Recorder = (*Collector)(nil)

// NewCollector creates a new Prometheus collector under the given namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of ledger operations per operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Ledger operation latency",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 15), // 10µs to ~160ms
			},
			[]string{"operation"},
		),
		accounts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "accounts",
				Help:      "Current number of open accounts",
			},
		),
	}
}

// Register registers all metrics with the given registry.
func (c *Collector) Register(registry prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.operations, c.latency, c.accounts} {
		if err := registry.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// RecordOperation records one ledger operation.
func (c *Collector) RecordOperation(op, outcome string, duration time.Duration) {
	c.operations.WithLabelValues(op, outcome).Inc()
	c.latency.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordAccounts sets the open-account gauge.
func (c *Collector) RecordAccounts(n int) {
	c.accounts.Set(float64(n))
}

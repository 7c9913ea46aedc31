package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector on top of prometheus counters
type PrometheusCollector struct {
	namespace string

	completed        *prometheus.CounterVec
	rejected         *prometheus.CounterVec
	observerFailures *prometheus.CounterVec
	feeAmounts       *prometheus.HistogramVec
}

// NewPrometheusCollector creates a collector with all vectors initialized
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		namespace: namespace,
		completed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_completed_total",
				Help:      "Total number of completed transactions per kind",
			},
			[]string{"kind"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_rejected_total",
				Help:      "Total number of rejected transactions per kind and failure code",
			},
			[]string{"kind", "code"},
		),
		observerFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "observer_failures_total",
				Help:      "Total number of failed or skipped notification deliveries per observer",
			},
			[]string{"observer"},
		),
		feeAmounts: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transaction_fee_amount",
				Help:      "Fees charged on completed transactions",
				Buckets:   []float64{0, 0.5, 1, 2.5, 5, 10, 25},
			},
			[]string{"kind"},
		),
	}
}

// Register registers all vectors with the given registerer
func (c *PrometheusCollector) Register(reg prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{c.completed, c.rejected, c.observerFailures, c.feeAmounts} {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

func (c *PrometheusCollector) TransactionCompleted(kind string, fee float64) {
	c.completed.WithLabelValues(kind).Inc()
	c.feeAmounts.WithLabelValues(kind).Observe(fee)
}

func (c *PrometheusCollector) TransactionRejected(kind, code string) {
	c.rejected.WithLabelValues(kind, code).Inc()
}

func (c *PrometheusCollector) ObserverFailure(observer string) {
	c.observerFailures.WithLabelValues(observer).Inc()
}

// Package metrics defines the engine's metrics surface. The engine reports
// through the Collector interface; callers pick the Prometheus
// implementation or the NoOp one.
package metrics

// Collector receives counters from the engine and the notifier
type Collector interface {
	// TransactionCompleted records a completed transaction and its fee
	TransactionCompleted(kind string, fee float64)

	// TransactionRejected records a rejected transaction by failure code
	TransactionRejected(kind, code string)

	// ObserverFailure records a failed or skipped notification delivery
	ObserverFailure(observer string)
}

// NoOpCollector discards all metrics
type NoOpCollector struct{}

func (NoOpCollector) TransactionCompleted(string, float64) {}
func (NoOpCollector) TransactionRejected(string, string)   {}
func (NoOpCollector) ObserverFailure(string)               {}

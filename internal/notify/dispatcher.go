// Package notify fans completed-transaction events out to attached
// observers. Observers run in attachment order; a failing observer is
// logged and skipped, never aborting dispatch for the others. Each observer
// sits behind its own circuit breaker so one that keeps failing stops being
// called until its breaker half-opens again.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"github.com/corebank-transaction-engine/internal/config"
	"github.com/corebank-transaction-engine/internal/domain/transaction"
	"github.com/corebank-transaction-engine/internal/metrics"
)

// Event is the completion payload broadcast after a transaction reaches
// Completed status. Balances is a post-execution snapshot of the involved
// accounts.
type Event struct {
	Transaction *transaction.Transaction
	Balances    map[uuid.UUID]decimal.Decimal
	OccurredAt  time.Time
}

// Observer is a pluggable completion-event sink
type Observer interface {
	Name() string
	Receive(event Event) error
}

type registration struct {
	observer Observer
	breaker  *gobreaker.CircuitBreaker
}

// Dispatcher delivers events to observers. With Async enabled, delivery
// happens on a single background worker, which preserves completion order
// per observer.
type Dispatcher struct {
	logger  *slog.Logger
	metrics metrics.Collector

	breakerThreshold uint32

	mu        sync.Mutex
	observers []*registration

	pool *ants.Pool // nil when dispatch is synchronous
}

// NewDispatcher creates a dispatcher from notifier configuration
func NewDispatcher(cfg config.NotifierConfig, logger *slog.Logger, collector metrics.Collector) (*Dispatcher, error) {
	d := &Dispatcher{
		logger:           logger,
		metrics:          collector,
		breakerThreshold: uint32(cfg.BreakerThreshold),
	}

	if cfg.Async {
		// One worker keeps per-observer delivery in completion order
		pool, err := ants.NewPool(1)
		if err != nil {
			return nil, err
		}
		d.pool = pool
	}

	return d, nil
}

// Attach registers an observer at the end of the dispatch order
func (d *Dispatcher) Attach(observer Observer) {
	threshold := d.breakerThreshold

	settings := gobreaker.Settings{
		Name: observer.Name(),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			d.logger.Warn("observer circuit breaker state changed",
				"observer", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, &registration{
		observer: observer,
		breaker:  gobreaker.NewCircuitBreaker(settings),
	})
}

// Detach removes an observer by name. Unknown names are ignored.
func (d *Dispatcher) Detach(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, reg := range d.observers {
		if reg.observer.Name() == name {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

// Notify delivers the event to every observer. Synchronous dispatch runs
// inline; asynchronous dispatch is queued on the worker.
func (d *Dispatcher) Notify(event Event) {
	if d.pool == nil {
		d.dispatch(event)
		return
	}

	if err := d.pool.Submit(func() { d.dispatch(event) }); err != nil {
		d.logger.Error("failed to queue notification, delivering inline",
			"tx_id", event.Transaction.ID.String(),
			"error", err,
		)
		d.dispatch(event)
	}
}

func (d *Dispatcher) dispatch(event Event) {
	d.mu.Lock()
	observers := make([]*registration, len(d.observers))
	copy(observers, d.observers)
	d.mu.Unlock()

	for _, reg := range observers {
		_, err := reg.breaker.Execute(func() (interface{}, error) {
			return nil, safeReceive(reg.observer, event)
		})
		if err != nil {
			d.logger.Error("observer failed",
				"observer", reg.observer.Name(),
				"tx_id", event.Transaction.ID.String(),
				"error", err,
			)
			d.metrics.ObserverFailure(reg.observer.Name())
		}
	}
}

// safeReceive converts an observer panic into an error so dispatch keeps going
func safeReceive(observer Observer, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()
	return observer.Receive(event)
}

// Close releases the async worker, waiting for queued deliveries
func (d *Dispatcher) Close() {
	if d.pool != nil {
		d.pool.Release()
	}
}

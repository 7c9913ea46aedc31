package notify

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebank-transaction-engine/internal/config"
	"github.com/corebank-transaction-engine/internal/domain/transaction"
	"github.com/corebank-transaction-engine/internal/metrics"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSyncDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(config.NotifierConfig{BreakerThreshold: 3}, testLogger(), metrics.NoOpCollector{})
	require.NoError(t, err)
	return d
}

func testEvent() Event {
	dest := uuid.New()
	tx := transaction.New(transaction.KindDeposit, nil, &dest, decimal.NewFromInt(100), "EUR", time.Now())
	_ = tx.Complete(decimal.Zero)
	return Event{
		Transaction: tx,
		Balances:    map[uuid.UUID]decimal.Decimal{dest: decimal.NewFromInt(1100)},
		OccurredAt:  tx.CreatedAt,
	}
}

// recordingObserver appends its name to a shared slice on every delivery
type recordingObserver struct {
	name string
	mu   *sync.Mutex
	seen *[]string
	err  error
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) Receive(event Event) error {
	o.mu.Lock()
	*o.seen = append(*o.seen, o.name)
	o.mu.Unlock()
	return o.err
}

// panickyObserver panics on every delivery
type panickyObserver struct{}

func (panickyObserver) Name() string              { return "panicky" }
func (panickyObserver) Receive(event Event) error { panic("observer exploded") }

func TestDispatcher_NotifiesInAttachmentOrder(t *testing.T) {
	d := newSyncDispatcher(t)
	var mu sync.Mutex
	var seen []string

	d.Attach(&recordingObserver{name: "first", mu: &mu, seen: &seen})
	d.Attach(&recordingObserver{name: "second", mu: &mu, seen: &seen})
	d.Attach(&recordingObserver{name: "third", mu: &mu, seen: &seen})

	d.Notify(testEvent())

	assert.Equal(t, []string{"first", "second", "third"}, seen)
}

func TestDispatcher_FailingObserverDoesNotBlockOthers(t *testing.T) {
	d := newSyncDispatcher(t)
	var mu sync.Mutex
	var seen []string

	d.Attach(&recordingObserver{name: "first", mu: &mu, seen: &seen, err: errors.New("boom")})
	d.Attach(&recordingObserver{name: "second", mu: &mu, seen: &seen})

	d.Notify(testEvent())

	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestDispatcher_PanickingObserverIsIsolated(t *testing.T) {
	d := newSyncDispatcher(t)
	var mu sync.Mutex
	var seen []string

	d.Attach(panickyObserver{})
	d.Attach(&recordingObserver{name: "survivor", mu: &mu, seen: &seen})

	assert.NotPanics(t, func() { d.Notify(testEvent()) })
	assert.Equal(t, []string{"survivor"}, seen)
}

func TestDispatcher_Detach(t *testing.T) {
	d := newSyncDispatcher(t)
	var mu sync.Mutex
	var seen []string

	d.Attach(&recordingObserver{name: "keep", mu: &mu, seen: &seen})
	d.Attach(&recordingObserver{name: "drop", mu: &mu, seen: &seen})
	d.Detach("drop")

	d.Notify(testEvent())

	assert.Equal(t, []string{"keep"}, seen)

	// Detaching an unknown name is a no-op
	d.Detach("never-attached")
	d.Notify(testEvent())
	assert.Equal(t, []string{"keep", "keep"}, seen)
}

func TestDispatcher_BreakerSkipsRepeatedlyFailingObserver(t *testing.T) {
	d := newSyncDispatcher(t)
	var mu sync.Mutex
	var seen []string

	// Threshold is 3 consecutive failures
	d.Attach(&recordingObserver{name: "flaky", mu: &mu, seen: &seen, err: errors.New("down")})

	for i := 0; i < 5; i++ {
		d.Notify(testEvent())
	}

	// The breaker opened after the third failure; later deliveries are skipped
	assert.Len(t, seen, 3)
}

func TestDispatcher_AsyncPreservesCompletionOrder(t *testing.T) {
	d, err := NewDispatcher(config.NotifierConfig{Async: true, BreakerThreshold: 3}, testLogger(), metrics.NoOpCollector{})
	require.NoError(t, err)
	defer d.Close()

	var mu sync.Mutex
	var seen []string
	done := make(chan struct{})

	d.Attach(&recordingObserver{name: "a", mu: &mu, seen: &seen})
	d.Attach(&recordingObserver{name: "b", mu: &mu, seen: &seen})

	for i := 0; i < 3; i++ {
		d.Notify(testEvent())
	}
	// A final event closes the channel once the single worker reaches it
	d.Attach(&closerObserver{done: done})
	d.Notify(testEvent())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async dispatch did not drain in time")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 8)
	for i := 0; i < 8; i += 2 {
		assert.Equal(t, "a", seen[i])
		assert.Equal(t, "b", seen[i+1])
	}
}

type closerObserver struct {
	done chan struct{}
	once sync.Once
}

func (o *closerObserver) Name() string { return "closer" }

func (o *closerObserver) Receive(event Event) error {
	o.once.Do(func() { close(o.done) })
	return nil
}

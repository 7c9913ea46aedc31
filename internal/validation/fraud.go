package validation

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank-transaction-engine/internal/config"
)

// FraudStage applies two lightweight heuristics to debiting operations:
// a rate limit on debits per source inside a trailing window, and a
// rejection of large debits during the configured night hours. The stage
// owns the per-account window of recent debit timestamps; entries older
// than the window are pruned before each check.
type FraudStage struct {
	maxDebits   int
	window      time.Duration
	nightAmount decimal.Decimal
	nightStart  int
	nightEnd    int

	mu      sync.Mutex
	recents map[uuid.UUID][]time.Time
}

func NewFraudStage(cfg config.FraudConfig) *FraudStage {
	return &FraudStage{
		maxDebits:   cfg.MaxDebitsPerHour,
		window:      cfg.Window,
		nightAmount: decimal.NewFromFloat(cfg.NightAmount),
		nightStart:  cfg.NightStartHour,
		nightEnd:    cfg.NightEndHour,
		recents:     make(map[uuid.UUID][]time.Time),
	}
}

func (s *FraudStage) Name() string { return "fraud" }

func (s *FraudStage) Check(ctx *Context) error {
	if !ctx.Tx.IsDebit() || ctx.Tx.Source == nil {
		return nil
	}

	if s.isNight(ctx.Now) && ctx.Tx.Amount.GreaterThan(s.nightAmount) {
		return fmt.Errorf("%w: debit of %s during night hours (%02d:00-%02d:00)",
			ErrFraudSuspected, ctx.Tx.Amount.String(), s.nightStart, s.nightEnd)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recent := s.prune(*ctx.Tx.Source, ctx.Now)
	if len(recent) >= s.maxDebits {
		return fmt.Errorf("%w: %d debits within %s (max %d)",
			ErrFraudSuspected, len(recent), s.window, s.maxDebits)
	}

	s.recents[*ctx.Tx.Source] = append(recent, ctx.Now)
	return nil
}

// prune drops window-expired timestamps for the account. Caller holds the lock.
func (s *FraudStage) prune(id uuid.UUID, now time.Time) []time.Time {
	cutoff := now.Add(-s.window)
	recent := s.recents[id][:0]
	for _, ts := range s.recents[id] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	s.recents[id] = recent
	return recent
}

// isNight reports whether t falls inside the night window, which wraps
// around midnight when start > end.
func (s *FraudStage) isNight(t time.Time) bool {
	hour := t.Hour()
	if s.nightStart > s.nightEnd {
		return hour >= s.nightStart || hour < s.nightEnd
	}
	return hour >= s.nightStart && hour < s.nightEnd
}

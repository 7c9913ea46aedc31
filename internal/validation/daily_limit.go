package validation

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank-transaction-engine/internal/config"
)

// DailyLimitStage caps the cumulative same-day debits per source account.
// Deposits are exempt. The stage owns its tracker map; a passing debit is
// recorded immediately, so the running total reflects everything this stage
// has let through today.
type DailyLimitStage struct {
	limit decimal.Decimal

	mu       sync.Mutex
	trackers map[uuid.UUID]*dayTotal
}

func NewDailyLimitStage(limits config.LimitsConfig) *DailyLimitStage {
	return &DailyLimitStage{
		limit:    decimal.NewFromFloat(limits.DailyDebitLimit),
		trackers: make(map[uuid.UUID]*dayTotal),
	}
}

func (s *DailyLimitStage) Name() string { return "daily_limit" }

func (s *DailyLimitStage) Check(ctx *Context) error {
	if !ctx.Tx.IsDebit() || ctx.Tx.Source == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tracker, ok := s.trackers[*ctx.Tx.Source]
	if !ok {
		tracker = &dayTotal{}
		s.trackers[*ctx.Tx.Source] = tracker
	}
	tracker.resetIfNewDay(ctx.Now)

	newTotal := tracker.total.Add(ctx.Tx.Amount)
	if newTotal.GreaterThan(s.limit) {
		return fmt.Errorf("%w: limit %s, already debited today %s, requested %s",
			ErrDailyLimitExceeded, s.limit.String(), tracker.total.String(), ctx.Tx.Amount.String())
	}

	tracker.total = newTotal
	return nil
}

// DebitedToday returns the tracked total for an account, for introspection
func (s *DailyLimitStage) DebitedToday(id uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tracker, ok := s.trackers[id]; ok {
		return tracker.total
	}
	return decimal.Zero
}

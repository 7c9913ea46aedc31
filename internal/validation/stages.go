package validation

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank-transaction-engine/internal/config"
	"github.com/corebank-transaction-engine/internal/domain/account"
	"github.com/corebank-transaction-engine/internal/domain/transaction"
)

// AmountStage rejects non-positive amounts and amounts above the
// single-transaction ceiling.
type AmountStage struct {
	max decimal.Decimal
}

func NewAmountStage(limits config.LimitsConfig) *AmountStage {
	return &AmountStage{max: decimal.NewFromFloat(limits.MaxAmount)}
}

func (s *AmountStage) Name() string { return "amount" }

func (s *AmountStage) Check(ctx *Context) error {
	if !ctx.Tx.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidAmount, ctx.Tx.Amount.String())
	}
	if ctx.Tx.Amount.GreaterThan(s.max) {
		return fmt.Errorf("%w: amount %s exceeds maximum %s", ErrInvalidAmount, ctx.Tx.Amount.String(), s.max.String())
	}
	return nil
}

// ExistenceStage verifies that the referenced accounts exist. The ledger's
// typed not-found error is passed through for classification.
type ExistenceStage struct{}

func NewExistenceStage() *ExistenceStage { return &ExistenceStage{} }

func (s *ExistenceStage) Name() string { return "existence" }

func (s *ExistenceStage) Check(ctx *Context) error {
	if ctx.Tx.Source != nil {
		if _, err := ctx.Accounts.Get(*ctx.Tx.Source); err != nil {
			return fmt.Errorf("source account: %w", err)
		}
	}
	if ctx.Tx.Destination != nil {
		if _, err := ctx.Accounts.Get(*ctx.Tx.Destination); err != nil {
			return fmt.Errorf("destination account: %w", err)
		}
	}
	return nil
}

// AccountStateStage checks the lifecycle state of both sides of the
// transaction. Suspended sources may still withdraw, but only up to a daily
// cap; the stage keeps its own per-account day tracker for that cap.
type AccountStateStage struct {
	cap decimal.Decimal

	mu       sync.Mutex
	trackers map[uuid.UUID]*dayTotal
}

func NewAccountStateStage(limits config.LimitsConfig) *AccountStateStage {
	return &AccountStateStage{
		cap:      decimal.NewFromFloat(limits.SuspendedDailyCap),
		trackers: make(map[uuid.UUID]*dayTotal),
	}
}

func (s *AccountStateStage) Name() string { return "account_state" }

func (s *AccountStateStage) Check(ctx *Context) error {
	if ctx.Tx.Source != nil {
		src, err := ctx.Accounts.Get(*ctx.Tx.Source)
		if err != nil {
			return fmt.Errorf("source account: %w", err)
		}

		switch ctx.Tx.Kind {
		case transaction.KindTransfer:
			if !src.Status.CanTransfer() {
				return fmt.Errorf("%w: source account is %s, transfers require ACTIVE", ErrAccountStateViolation, src.Status)
			}
		case transaction.KindWithdraw:
			if !src.Status.CanWithdraw() {
				return fmt.Errorf("%w: source account is %s, withdrawals not allowed", ErrAccountStateViolation, src.Status)
			}
			if src.Status == account.StatusSuspended {
				if err := s.checkSuspendedCap(src.ID, ctx.Tx.Amount, ctx.Now); err != nil {
					return err
				}
			}
		}
	}

	if ctx.Tx.Destination != nil {
		dst, err := ctx.Accounts.Get(*ctx.Tx.Destination)
		if err != nil {
			return fmt.Errorf("destination account: %w", err)
		}
		if !dst.Status.CanDeposit() {
			return fmt.Errorf("%w: destination account is %s, cannot receive funds", ErrAccountStateViolation, dst.Status)
		}
	}

	return nil
}

func (s *AccountStateStage) checkSuspendedCap(id uuid.UUID, amount decimal.Decimal, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracker, ok := s.trackers[id]
	if !ok {
		tracker = &dayTotal{}
		s.trackers[id] = tracker
	}
	tracker.resetIfNewDay(now)

	newTotal := tracker.total.Add(amount)
	if newTotal.GreaterThan(s.cap) {
		return fmt.Errorf("%w: suspended account daily withdrawal cap %s exceeded (today: %s, requested: %s)",
			ErrAccountStateViolation, s.cap.String(), tracker.total.String(), amount.String())
	}
	tracker.total = newTotal
	return nil
}

// BalanceStage verifies that a debiting operation stays within
// balance + overdraft. The fee-inclusive total is re-checked at execution.
type BalanceStage struct{}

func NewBalanceStage() *BalanceStage { return &BalanceStage{} }

func (s *BalanceStage) Name() string { return "balance" }

func (s *BalanceStage) Check(ctx *Context) error {
	if !ctx.Tx.IsDebit() || ctx.Tx.Source == nil {
		return nil
	}

	src, err := ctx.Accounts.Get(*ctx.Tx.Source)
	if err != nil {
		return fmt.Errorf("source account: %w", err)
	}

	if !src.CanDebit(ctx.Tx.Amount) {
		return fmt.Errorf("%w: amount %s exceeds balance %s plus overdraft %s",
			ErrInsufficientFunds, ctx.Tx.Amount.String(), src.Balance.String(), src.OverdraftLimit.String())
	}
	return nil
}

// dayTotal accumulates amounts for one calendar day
type dayTotal struct {
	day   time.Time
	total decimal.Decimal
}

func (t *dayTotal) resetIfNewDay(now time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if !today.Equal(t.day) {
		t.day = today
		t.total = decimal.Zero
	}
}

// Package ledger holds the in-memory account store. It is the single owner
// of account records; everything else reads through Get and mutates through
// MutateBalance or ChangeState.
package ledger

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank-transaction-engine/internal/domain/account"
)

// ErrAccountNotFound indicates missing account
type ErrAccountNotFound struct {
	AccountID uuid.UUID
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.AccountID.String()
}

// Ledger stores account records keyed by ID. All access is guarded by a
// single lock; callers never see live records, only copies.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*account.Account
	logger   *slog.Logger
}

// New creates an empty ledger
func New(logger *slog.Logger) *Ledger {
	return &Ledger{
		accounts: make(map[uuid.UUID]*account.Account),
		logger:   logger,
	}
}

// Create opens an account of the given type. The type's minimum initial
// deposit is enforced by the account constructor.
func (l *Ledger) Create(accType account.Type, initialDeposit decimal.Decimal, holder account.Contact) (*account.Account, error) {
	acc, err := account.New(accType, initialDeposit, holder)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.accounts[acc.ID] = acc
	l.mu.Unlock()

	l.logger.Info("account created",
		"account_id", acc.ID.String(),
		"type", acc.Type,
		"balance", acc.Balance.String(),
	)

	snapshot := *acc
	return &snapshot, nil
}

// Get returns a copy of the account record, or ErrAccountNotFound
func (l *Ledger) Get(id uuid.UUID) (*account.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acc, ok := l.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound{AccountID: id}
	}

	snapshot := *acc
	return &snapshot, nil
}

// MutateBalance applies delta to the account balance unconditionally. The
// caller must have validated the mutation; the ledger only checks existence.
func (l *Ledger) MutateBalance(id uuid.UUID, delta decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[id]
	if !ok {
		return ErrAccountNotFound{AccountID: id}
	}

	acc.Balance = acc.Balance.Add(delta)

	l.logger.Debug("balance mutated",
		"account_id", id.String(),
		"delta", delta.String(),
		"balance", acc.Balance.String(),
	)
	return nil
}

// ChangeState applies a lifecycle action to the account
func (l *Ledger) ChangeState(id uuid.UUID, action account.Action) (*account.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound{AccountID: id}
	}

	if err := acc.ChangeState(action); err != nil {
		return nil, err
	}

	l.logger.Info("account state changed",
		"account_id", id.String(),
		"action", action,
		"status", acc.Status,
	)

	snapshot := *acc
	return &snapshot, nil
}

// ApplyInterest credits balance * rate / 100 to every interest-bearing
// account with a positive balance. Returns the number of accounts credited.
func (l *Ledger) ApplyInterest() int {
	hundred := decimal.NewFromInt(100)

	l.mu.Lock()
	defer l.mu.Unlock()

	credited := 0
	for _, acc := range l.accounts {
		if acc.InterestRate.IsZero() || !acc.Balance.IsPositive() {
			continue
		}
		interest := acc.Balance.Mul(acc.InterestRate).Div(hundred).Round(2)
		acc.Balance = acc.Balance.Add(interest)
		credited++

		l.logger.Info("interest applied",
			"account_id", acc.ID.String(),
			"rate", acc.InterestRate.String(),
			"interest", interest.String(),
		)
	}
	return credited
}

// Balances returns a balance snapshot for the given account IDs. Unknown
// IDs are skipped.
func (l *Ledger) Balances(ids ...uuid.UUID) map[uuid.UUID]decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snapshot := make(map[uuid.UUID]decimal.Decimal, len(ids))
	for _, id := range ids {
		if acc, ok := l.accounts[id]; ok {
			snapshot[id] = acc.Balance
		}
	}
	return snapshot
}

package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind defines the possible transaction operations
type Kind string

const (
	KindDeposit  Kind = "DEPOSIT"
	KindWithdraw Kind = "WITHDRAW"
	KindTransfer Kind = "TRANSFER"
)

// Status defines transaction processing states. Pending is the only
// non-terminal state; a transaction transitions exactly once.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
)

var (
	ErrUnknownKind = errors.New("unknown transaction kind")

	// ErrAlreadyFinalized indicates an attempted second status transition
	ErrAlreadyFinalized = errors.New("transaction already completed or rejected")
)

// Transaction records one requested operation and its outcome. Source is nil
// for deposits, Destination is nil for withdrawals. Once the status is
// terminal the record is immutable.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	Kind            Kind            `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Fee             decimal.Decimal `json:"fee"`
	Source          *uuid.UUID      `json:"source,omitempty"`
	Destination     *uuid.UUID      `json:"destination,omitempty"`
	Currency        string          `json:"currency"`
	Status          Status          `json:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// New creates a pending transaction
func New(kind Kind, source, destination *uuid.UUID, amount decimal.Decimal, currency string, now time.Time) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Kind:        kind,
		Amount:      amount,
		Fee:         decimal.Zero,
		Source:      source,
		Destination: destination,
		Currency:    currency,
		Status:      StatusPending,
		CreatedAt:   now,
	}
}

// Complete marks the transaction completed with the fee that was charged
func (t *Transaction) Complete(fee decimal.Decimal) error {
	if t.Status != StatusPending {
		return ErrAlreadyFinalized
	}
	t.Fee = fee
	t.Status = StatusCompleted
	return nil
}

// Reject marks the transaction rejected with a reason
func (t *Transaction) Reject(reason string) error {
	if t.Status != StatusPending {
		return ErrAlreadyFinalized
	}
	t.Status = StatusRejected
	t.RejectionReason = reason
	return nil
}

// IsDebit reports whether the transaction debits its source account
func (t *Transaction) IsDebit() bool {
	return t.Kind == KindWithdraw || t.Kind == KindTransfer
}

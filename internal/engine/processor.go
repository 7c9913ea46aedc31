// Package engine wires the validation chain, the fee calculator, the ledger
// and the notification dispatcher into the single entry point for
// rule-checked balance mutation.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank-transaction-engine/internal/config"
	"github.com/corebank-transaction-engine/internal/domain/transaction"
	"github.com/corebank-transaction-engine/internal/fees"
	"github.com/corebank-transaction-engine/internal/ledger"
	"github.com/corebank-transaction-engine/internal/metrics"
	"github.com/corebank-transaction-engine/internal/notify"
	"github.com/corebank-transaction-engine/internal/validation"
)

// ErrMissingAccountRef indicates a request without the account reference its
// kind requires (destination for deposits, source for withdrawals, both for
// transfers). This is a malformed request, not a business rejection.
var ErrMissingAccountRef = errors.New("missing account reference for transaction kind")

// ErrVerificationRequired marks deposits above the executor's hard ceiling;
// they need external verification this system cannot perform.
var ErrVerificationRequired = errors.New("deposit requires external verification")

// ErrTransactionNotFound indicates an unknown transaction ID
type ErrTransactionNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.TransactionID.String()
}

// Clock supplies the processor's notion of now; injected for tests
type Clock func() time.Time

// Request describes one transaction to process
type Request struct {
	Kind        transaction.Kind
	Source      *uuid.UUID
	Destination *uuid.UUID
	Amount      decimal.Decimal
	Currency    string
}

// Processor validates and executes transactions. Processing is serialized by
// a single lock so validation and execution form one atomic step with no
// gap for concurrent debits to slip through.
type Processor struct {
	ledger     *ledger.Ledger
	chain      *validation.Chain
	fees       fees.Calculator
	dispatcher *notify.Dispatcher
	collector  metrics.Collector
	logger     *slog.Logger
	clock      Clock

	depositCeiling  decimal.Decimal
	defaultCurrency string

	mu        sync.Mutex
	processed map[uuid.UUID]*transaction.Transaction
}

// NewProcessor creates a processor. A nil clock defaults to time.Now.
func NewProcessor(
	ldg *ledger.Ledger,
	chain *validation.Chain,
	calculator fees.Calculator,
	dispatcher *notify.Dispatcher,
	collector metrics.Collector,
	limits config.LimitsConfig,
	feesCfg config.FeesConfig,
	logger *slog.Logger,
	clock Clock,
) *Processor {
	if clock == nil {
		clock = time.Now
	}
	return &Processor{
		ledger:          ldg,
		chain:           chain,
		fees:            calculator,
		dispatcher:      dispatcher,
		collector:       collector,
		logger:          logger,
		clock:           clock,
		depositCeiling:  decimal.NewFromFloat(limits.DepositCeiling),
		defaultCurrency: feesCfg.DefaultCurrency,
		processed:       make(map[uuid.UUID]*transaction.Transaction),
	}
}

// Process runs one transaction through validation, fee calculation and
// execution. Business rule failures come back as a Rejected transaction
// with a reason and a nil error; a non-nil error means the request itself
// was malformed and nothing was recorded.
func (p *Processor) Process(req Request) (*transaction.Transaction, error) {
	if err := checkShape(req); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = p.defaultCurrency
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock()
	tx := transaction.New(req.Kind, req.Source, req.Destination, req.Amount, currency, now)

	p.logger.Info("processing transaction",
		"tx_id", tx.ID.String(),
		"kind", tx.Kind,
		"amount", tx.Amount.String(),
		"currency", tx.Currency,
	)

	vctx := &validation.Context{Tx: tx, Accounts: p.ledger, Now: now}
	if err := p.chain.Check(vctx); err != nil {
		return p.reject(tx, err), nil
	}

	// Hard executor-level ceiling, independent of the daily-limit stage
	if tx.Kind == transaction.KindDeposit && tx.Amount.GreaterThan(p.depositCeiling) {
		err := fmt.Errorf("%w: deposit of %s exceeds %s",
			ErrVerificationRequired, tx.Amount.String(), p.depositCeiling.String())
		return p.reject(tx, err), nil
	}

	fee := p.computeFee(tx, now)

	if err := p.execute(tx, fee); err != nil {
		return p.reject(tx, err), nil
	}

	if err := tx.Complete(fee); err != nil {
		// Unreachable for a freshly created transaction
		p.logger.Error("failed to finalize transaction", "tx_id", tx.ID.String(), "error", err)
	}
	p.processed[tx.ID] = tx
	p.collector.TransactionCompleted(string(tx.Kind), fee.InexactFloat64())

	p.logger.Info("transaction completed",
		"tx_id", tx.ID.String(),
		"kind", tx.Kind,
		"amount", tx.Amount.String(),
		"fee", fee.String(),
	)

	p.dispatcher.Notify(notify.Event{
		Transaction: tx,
		Balances:    p.ledger.Balances(involved(tx)...),
		OccurredAt:  now,
	})

	return tx, nil
}

// Transaction returns a previously processed transaction by ID
func (p *Processor) Transaction(id uuid.UUID) (*transaction.Transaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tx, ok := p.processed[id]
	if !ok {
		return nil, ErrTransactionNotFound{TransactionID: id}
	}
	return tx, nil
}

// computeFee derives the fee from the source account's type; deposits are
// free and use the zero value of the fee context's account type.
func (p *Processor) computeFee(tx *transaction.Transaction, now time.Time) decimal.Decimal {
	fctx := fees.Context{
		Kind:     tx.Kind,
		Amount:   tx.Amount,
		Currency: tx.Currency,
		Weekend:  isWeekend(now),
	}
	if tx.Currency == p.defaultCurrency {
		fctx.Currency = "" // home currency, no foreign surcharge
	}

	if tx.Source != nil {
		if src, err := p.ledger.Get(*tx.Source); err == nil {
			fctx.AccountType = src.Type
		}
	}

	return p.fees.Fee(fctx)
}

// execute applies the balance mutations for a validated transaction. The
// overdraft invariant is enforced on the fee-inclusive total before any
// mutation, so a rejection never needs a rollback.
func (p *Processor) execute(tx *transaction.Transaction, fee decimal.Decimal) error {
	switch tx.Kind {
	case transaction.KindDeposit:
		return p.ledger.MutateBalance(*tx.Destination, tx.Amount)

	case transaction.KindWithdraw:
		total := tx.Amount.Add(fee)
		if err := p.checkDebit(*tx.Source, total); err != nil {
			return err
		}
		if err := p.ledger.MutateBalance(*tx.Source, total.Neg()); err != nil {
			return err
		}
		p.alertOverdraft(*tx.Source)
		return nil

	case transaction.KindTransfer:
		total := tx.Amount.Add(fee)
		if err := p.checkDebit(*tx.Source, total); err != nil {
			return err
		}
		if err := p.ledger.MutateBalance(*tx.Source, total.Neg()); err != nil {
			return err
		}
		// Credit is fee-free; the source bears the whole fee
		if err := p.ledger.MutateBalance(*tx.Destination, tx.Amount); err != nil {
			// Undo the debit so a failed credit leaves no trace
			if rbErr := p.ledger.MutateBalance(*tx.Source, total); rbErr != nil {
				p.logger.Error("failed to roll back transfer debit",
					"tx_id", tx.ID.String(), "error", rbErr)
			}
			return err
		}
		p.alertOverdraft(*tx.Source)
		return nil
	}

	return transaction.ErrUnknownKind
}

func (p *Processor) checkDebit(id uuid.UUID, total decimal.Decimal) error {
	acc, err := p.ledger.Get(id)
	if err != nil {
		return err
	}
	if !acc.CanDebit(total) {
		return fmt.Errorf("%w: total %s (amount plus fee) exceeds balance %s plus overdraft %s",
			validation.ErrInsufficientFunds, total.String(), acc.Balance.String(), acc.OverdraftLimit.String())
	}
	return nil
}

func (p *Processor) alertOverdraft(id uuid.UUID) {
	acc, err := p.ledger.Get(id)
	if err != nil || !acc.Balance.IsNegative() {
		return
	}
	p.logger.Warn("account in overdraft",
		"account_id", id.String(),
		"balance", acc.Balance.String(),
	)
}

func (p *Processor) reject(tx *transaction.Transaction, cause error) *transaction.Transaction {
	if err := tx.Reject(cause.Error()); err != nil {
		p.logger.Error("failed to reject transaction", "tx_id", tx.ID.String(), "error", err)
	}
	p.processed[tx.ID] = tx
	p.collector.TransactionRejected(string(tx.Kind), FailureCode(cause))

	p.logger.Warn("transaction rejected",
		"tx_id", tx.ID.String(),
		"kind", tx.Kind,
		"reason", tx.RejectionReason,
	)
	return tx
}

func checkShape(req Request) error {
	switch req.Kind {
	case transaction.KindDeposit:
		if req.Destination == nil {
			return fmt.Errorf("%w: deposit requires a destination", ErrMissingAccountRef)
		}
	case transaction.KindWithdraw:
		if req.Source == nil {
			return fmt.Errorf("%w: withdrawal requires a source", ErrMissingAccountRef)
		}
	case transaction.KindTransfer:
		if req.Source == nil || req.Destination == nil {
			return fmt.Errorf("%w: transfer requires source and destination", ErrMissingAccountRef)
		}
	default:
		return transaction.ErrUnknownKind
	}
	return nil
}

func involved(tx *transaction.Transaction) []uuid.UUID {
	var ids []uuid.UUID
	if tx.Source != nil {
		ids = append(ids, *tx.Source)
	}
	if tx.Destination != nil {
		ids = append(ids, *tx.Destination)
	}
	return ids
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Package validation implements the ordered rule chain a transaction must
// clear before execution. Stages are independent checks assembled by a
// builder; the chain short-circuits on the first failure. Stages that need
// per-account tracking state (daily totals, recent-debit windows) own their
// maps themselves and are not shared between chains.
package validation

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corebank-transaction-engine/internal/config"
	"github.com/corebank-transaction-engine/internal/domain/account"
	"github.com/corebank-transaction-engine/internal/domain/transaction"
)

var (
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrAccountStateViolation = errors.New("account state violation")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrDailyLimitExceeded    = errors.New("daily debit limit exceeded")
	ErrFraudSuspected        = errors.New("fraud suspected")
)

// AccountReader is the ledger view the stages consult
type AccountReader interface {
	Get(id uuid.UUID) (*account.Account, error)
}

// Context carries one transaction through the chain
type Context struct {
	Tx       *transaction.Transaction
	Accounts AccountReader
	Now      time.Time
}

// Stage is a single rule check. A nil return passes the transaction to the
// next stage; an error halts the chain and becomes the rejection reason.
type Stage interface {
	Name() string
	Check(ctx *Context) error
}

// Chain runs stages in order and stops at the first failure
type Chain struct {
	stages []Stage
	logger *slog.Logger
}

// Check runs the chain. The returned error is the first stage failure,
// unwrapped for the caller to classify.
func (c *Chain) Check(ctx *Context) error {
	for _, stage := range c.stages {
		if err := stage.Check(ctx); err != nil {
			c.logger.Warn("validation failed",
				"stage", stage.Name(),
				"tx_id", ctx.Tx.ID.String(),
				"kind", ctx.Tx.Kind,
				"error", err,
			)
			return err
		}
		c.logger.Debug("validation stage passed", "stage", stage.Name(), "tx_id", ctx.Tx.ID.String())
	}
	return nil
}

// Stages returns the ordered stage names, mostly for introspection in tests
// and logs.
func (c *Chain) Stages() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name()
	}
	return names
}

// Builder assembles an ordered stage list into a chain
type Builder struct {
	stages []Stage
	logger *slog.Logger
}

// NewBuilder creates an empty chain builder
func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{logger: logger}
}

// Add appends a stage; order of calls is the order of evaluation
func (b *Builder) Add(stage Stage) *Builder {
	b.stages = append(b.stages, stage)
	return b
}

// Build returns the assembled chain
func (b *Builder) Build() *Chain {
	return &Chain{stages: b.stages, logger: b.logger}
}

// StandardChain assembles the full six-stage chain in its logical order:
// amount, existence, account state, balance, daily limit, fraud.
func StandardChain(limits config.LimitsConfig, fraud config.FraudConfig, logger *slog.Logger) *Chain {
	return NewBuilder(logger).
		Add(NewAmountStage(limits)).
		Add(NewExistenceStage()).
		Add(NewAccountStateStage(limits)).
		Add(NewBalanceStage()).
		Add(NewDailyLimitStage(limits)).
		Add(NewFraudStage(fraud)).
		Build()
}

// ReducedChain assembles the minimal amount + existence + balance chain for
// constrained contexts.
func ReducedChain(limits config.LimitsConfig, logger *slog.Logger) *Chain {
	return NewBuilder(logger).
		Add(NewAmountStage(limits)).
		Add(NewExistenceStage()).
		Add(NewBalanceStage()).
		Build()
}

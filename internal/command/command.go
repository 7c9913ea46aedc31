// Package command wraps single mutating operations as reversible units.
// Commands mutate balances through the ledger and remember enough state to
// invert their effect exactly once; the Invoker keeps the undo/redo history.
package command

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank-transaction-engine/internal/ledger"
	"github.com/corebank-transaction-engine/internal/validation"
)

var (
	// ErrNotExecuted indicates an undo of a command that never ran
	ErrNotExecuted = errors.New("command has not been executed")

	// ErrInvalidCommandAmount indicates a non-positive command amount
	ErrInvalidCommandAmount = errors.New("command amount must be positive")
)

// Command is one reversible mutating operation
type Command interface {
	Execute() error
	Undo() error
	Describe() string
}

// DepositCommand credits an account by a fixed amount
type DepositCommand struct {
	ledger    *ledger.Ledger
	accountID uuid.UUID
	amount    decimal.Decimal
	executed  bool
}

func NewDeposit(ldg *ledger.Ledger, accountID uuid.UUID, amount decimal.Decimal) *DepositCommand {
	return &DepositCommand{ledger: ldg, accountID: accountID, amount: amount}
}

func (c *DepositCommand) Execute() error {
	if !c.amount.IsPositive() {
		return ErrInvalidCommandAmount
	}
	if err := c.ledger.MutateBalance(c.accountID, c.amount); err != nil {
		return err
	}
	c.executed = true
	return nil
}

func (c *DepositCommand) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}
	if err := c.ledger.MutateBalance(c.accountID, c.amount.Neg()); err != nil {
		return err
	}
	c.executed = false
	return nil
}

func (c *DepositCommand) Describe() string {
	return fmt.Sprintf("deposit %s to account %s", c.amount.StringFixed(2), c.accountID)
}

// WithdrawCommand debits an account by a fixed amount, respecting the
// overdraft limit.
type WithdrawCommand struct {
	ledger    *ledger.Ledger
	accountID uuid.UUID
	amount    decimal.Decimal
	executed  bool
}

func NewWithdraw(ldg *ledger.Ledger, accountID uuid.UUID, amount decimal.Decimal) *WithdrawCommand {
	return &WithdrawCommand{ledger: ldg, accountID: accountID, amount: amount}
}

func (c *WithdrawCommand) Execute() error {
	if !c.amount.IsPositive() {
		return ErrInvalidCommandAmount
	}
	acc, err := c.ledger.Get(c.accountID)
	if err != nil {
		return err
	}
	if !acc.CanDebit(c.amount) {
		return fmt.Errorf("%w: amount %s exceeds balance %s plus overdraft %s",
			validation.ErrInsufficientFunds, c.amount.String(), acc.Balance.String(), acc.OverdraftLimit.String())
	}
	if err := c.ledger.MutateBalance(c.accountID, c.amount.Neg()); err != nil {
		return err
	}
	c.executed = true
	return nil
}

func (c *WithdrawCommand) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}
	if err := c.ledger.MutateBalance(c.accountID, c.amount); err != nil {
		return err
	}
	c.executed = false
	return nil
}

func (c *WithdrawCommand) Describe() string {
	return fmt.Sprintf("withdraw %s from account %s", c.amount.StringFixed(2), c.accountID)
}

// TransferCommand composes a withdrawal and a deposit. Execute rolls back
// the withdrawal if the deposit fails; Undo reverses in opposite order and
// succeeds only if both inner undos succeed.
type TransferCommand struct {
	withdraw *WithdrawCommand
	deposit  *DepositCommand
	amount   decimal.Decimal
	source   uuid.UUID
	dest     uuid.UUID
}

func NewTransfer(ldg *ledger.Ledger, source, dest uuid.UUID, amount decimal.Decimal) *TransferCommand {
	return &TransferCommand{
		withdraw: NewWithdraw(ldg, source, amount),
		deposit:  NewDeposit(ldg, dest, amount),
		amount:   amount,
		source:   source,
		dest:     dest,
	}
}

func (c *TransferCommand) Execute() error {
	if err := c.withdraw.Execute(); err != nil {
		return fmt.Errorf("transfer withdrawal failed: %w", err)
	}
	if err := c.deposit.Execute(); err != nil {
		if rbErr := c.withdraw.Undo(); rbErr != nil {
			return errors.Join(fmt.Errorf("transfer deposit failed: %w", err), rbErr)
		}
		return fmt.Errorf("transfer deposit failed: %w", err)
	}
	return nil
}

func (c *TransferCommand) Undo() error {
	depositErr := c.deposit.Undo()
	withdrawErr := c.withdraw.Undo()
	if depositErr != nil || withdrawErr != nil {
		return errors.Join(depositErr, withdrawErr)
	}
	return nil
}

func (c *TransferCommand) Describe() string {
	return fmt.Sprintf("transfer %s from account %s to account %s", c.amount.StringFixed(2), c.source, c.dest)
}

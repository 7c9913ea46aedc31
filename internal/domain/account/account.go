package account

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type identifies the product an account was opened as. The type fixes the
// minimum initial deposit, the overdraft limit and the interest rate as
// bank-level policy; none of these are configurable per instance.
type Type string

const (
	TypeChecking Type = "CHECKING"
	TypeSavings  Type = "SAVINGS"
	TypeBusiness Type = "BUSINESS"
)

// typePolicy captures the fixed per-type account policy
type typePolicy struct {
	minimumDeposit decimal.Decimal
	overdraftLimit decimal.Decimal
	interestRate   decimal.Decimal // percent per application run
}

var policies = map[Type]typePolicy{
	TypeChecking: {
		minimumDeposit: decimal.NewFromInt(100),
		overdraftLimit: decimal.NewFromInt(500),
		interestRate:   decimal.Zero,
	},
	TypeSavings: {
		minimumDeposit: decimal.NewFromInt(500),
		overdraftLimit: decimal.Zero,
		interestRate:   decimal.NewFromFloat(2.5),
	},
	TypeBusiness: {
		minimumDeposit: decimal.NewFromInt(1000),
		overdraftLimit: decimal.NewFromInt(2000),
		interestRate:   decimal.NewFromFloat(0.5),
	},
}

// ErrUnknownType indicates an account type outside the product catalogue
type ErrUnknownType struct {
	Type Type
}

func (e ErrUnknownType) Error() string {
	return "unknown account type: " + string(e.Type)
}

// ErrBelowMinimumDeposit indicates an opening deposit under the type's floor
type ErrBelowMinimumDeposit struct {
	Type    Type
	Minimum decimal.Decimal
	Given   decimal.Decimal
}

func (e ErrBelowMinimumDeposit) Error() string {
	return fmt.Sprintf("initial deposit %s below minimum %s for %s account",
		e.Given.StringFixed(2), e.Minimum.StringFixed(2), e.Type)
}

// Contact holds the holder's contact information
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Account represents a bank account
type Account struct {
	ID             uuid.UUID       `json:"id"`
	Type           Type            `json:"type"`
	Holder         Contact         `json:"holder"`
	Balance        decimal.Decimal `json:"balance"`
	OverdraftLimit decimal.Decimal `json:"overdraft_limit"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// New creates an account of the given type, enforcing the type's minimum
// initial deposit and assigning its overdraft limit and interest rate.
func New(accType Type, initialDeposit decimal.Decimal, holder Contact) (*Account, error) {
	policy, ok := policies[accType]
	if !ok {
		return nil, ErrUnknownType{Type: accType}
	}

	if initialDeposit.LessThan(policy.minimumDeposit) {
		return nil, ErrBelowMinimumDeposit{
			Type:    accType,
			Minimum: policy.minimumDeposit,
			Given:   initialDeposit,
		}
	}

	return &Account{
		ID:             uuid.New(),
		Type:           accType,
		Holder:         holder,
		Balance:        initialDeposit,
		OverdraftLimit: policy.overdraftLimit,
		InterestRate:   policy.interestRate,
		Status:         StatusActive,
		CreatedAt:      time.Now(),
	}, nil
}

// MinimumDeposit returns the opening-deposit floor for an account type.
func MinimumDeposit(accType Type) (decimal.Decimal, error) {
	policy, ok := policies[accType]
	if !ok {
		return decimal.Zero, ErrUnknownType{Type: accType}
	}
	return policy.minimumDeposit, nil
}

// CanDebit reports whether debiting total keeps the balance within the
// overdraft limit: balance - total >= -overdraft.
func (a *Account) CanDebit(total decimal.Decimal) bool {
	return a.Balance.Sub(total).GreaterThanOrEqual(a.OverdraftLimit.Neg())
}

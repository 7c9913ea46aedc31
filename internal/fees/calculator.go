// Package fees computes transaction fees. A base table keyed by account type
// and transaction kind is wrapped by surcharge decorators applied in a fixed
// order: base fee, then the foreign-currency flat addition, then the weekend
// multiplier. Each stage can be composed independently so new surcharges can
// be stacked without touching existing ones.
package fees

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/corebank-transaction-engine/internal/config"
	"github.com/corebank-transaction-engine/internal/domain/account"
	"github.com/corebank-transaction-engine/internal/domain/transaction"
)

// Context carries everything a fee stage may consult
type Context struct {
	AccountType account.Type
	Kind        transaction.Kind
	Amount      decimal.Decimal
	Currency    string
	Weekend     bool
}

// Calculator computes the fee for a transaction. Implementations must
// return a non-negative value rounded to 2 decimal places.
type Calculator interface {
	Fee(ctx Context) decimal.Decimal
}

// New builds the standard calculator chain from configuration
func New(cfg config.FeesConfig) Calculator {
	return WithWeekendSurcharge(
		WithForeignSurcharge(Base(), cfg.DefaultCurrency, decimal.NewFromFloat(cfg.ForeignSurcharge)),
		decimal.NewFromFloat(cfg.WeekendMultiplier),
	)
}

// Base returns the base fee table with no surcharges
func Base() Calculator {
	return baseTable{}
}

type baseTable struct{}

var (
	feeSmallCheckingWithdraw = decimal.Zero
	feeLargeCheckingWithdraw = decimal.NewFromFloat(2.5)
	feeSavingsWithdraw       = decimal.NewFromInt(1)
	feeSmallBusinessWithdraw = decimal.NewFromInt(2)
	feeLargeBusinessWithdraw = decimal.NewFromInt(5)
	feeCheckingTransfer      = decimal.NewFromInt(1)
	feeSavingsTransfer       = decimal.NewFromFloat(2.5)
	feeBusinessTransfer      = decimal.NewFromFloat(0.5)

	largeCheckingWithdraw = decimal.NewFromInt(1000)
	largeBusinessWithdraw = decimal.NewFromInt(5000)
)

func (baseTable) Fee(ctx Context) decimal.Decimal {
	switch ctx.Kind {
	case transaction.KindWithdraw:
		switch ctx.AccountType {
		case account.TypeChecking:
			if ctx.Amount.GreaterThan(largeCheckingWithdraw) {
				return feeLargeCheckingWithdraw
			}
			return feeSmallCheckingWithdraw
		case account.TypeSavings:
			return feeSavingsWithdraw
		case account.TypeBusiness:
			if ctx.Amount.GreaterThan(largeBusinessWithdraw) {
				return feeLargeBusinessWithdraw
			}
			return feeSmallBusinessWithdraw
		}
	case transaction.KindTransfer:
		switch ctx.AccountType {
		case account.TypeChecking:
			return feeCheckingTransfer
		case account.TypeSavings:
			return feeSavingsTransfer
		case account.TypeBusiness:
			return feeBusinessTransfer
		}
	}
	// Deposits and unknown combinations are free
	return decimal.Zero
}

// WithForeignSurcharge wraps a calculator with a flat surcharge for
// transactions not denominated in the default currency.
func WithForeignSurcharge(next Calculator, defaultCurrency string, surcharge decimal.Decimal) Calculator {
	return &foreignSurcharge{
		next:            next,
		defaultCurrency: defaultCurrency,
		surcharge:       surcharge,
	}
}

type foreignSurcharge struct {
	next            Calculator
	defaultCurrency string
	surcharge       decimal.Decimal
}

func (s *foreignSurcharge) Fee(ctx Context) decimal.Decimal {
	fee := s.next.Fee(ctx)
	if ctx.Currency != "" && !strings.EqualFold(ctx.Currency, s.defaultCurrency) {
		fee = fee.Add(s.surcharge)
	}
	return fee.Round(2)
}

// WithWeekendSurcharge wraps a calculator with a multiplier applied when the
// transaction occurs on a weekend.
func WithWeekendSurcharge(next Calculator, multiplier decimal.Decimal) Calculator {
	return &weekendSurcharge{
		next:       next,
		multiplier: multiplier,
	}
}

type weekendSurcharge struct {
	next       Calculator
	multiplier decimal.Decimal
}

func (s *weekendSurcharge) Fee(ctx Context) decimal.Decimal {
	fee := s.next.Fee(ctx)
	if ctx.Weekend {
		fee = fee.Mul(s.multiplier)
	}
	return fee.Round(2)
}

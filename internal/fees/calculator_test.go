package fees

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/corebank-transaction-engine/internal/config"
	"github.com/corebank-transaction-engine/internal/domain/account"
	"github.com/corebank-transaction-engine/internal/domain/transaction"
)

func testFeesConfig() config.FeesConfig {
	return config.FeesConfig{
		DefaultCurrency:   "EUR",
		ForeignSurcharge:  0.50,
		WeekendMultiplier: 1.10,
	}
}

func TestBase_Withdrawals(t *testing.T) {
	calc := Base()

	tests := []struct {
		name    string
		accType account.Type
		amount  int64
		want    string
	}{
		{name: "checking small", accType: account.TypeChecking, amount: 500, want: "0"},
		{name: "checking at threshold", accType: account.TypeChecking, amount: 1000, want: "0"},
		{name: "checking large", accType: account.TypeChecking, amount: 1500, want: "2.5"},
		{name: "savings flat", accType: account.TypeSavings, amount: 50, want: "1"},
		{name: "savings flat large", accType: account.TypeSavings, amount: 40000, want: "1"},
		{name: "business small", accType: account.TypeBusiness, amount: 3000, want: "2"},
		{name: "business at threshold", accType: account.TypeBusiness, amount: 5000, want: "2"},
		{name: "business large", accType: account.TypeBusiness, amount: 6000, want: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := calc.Fee(Context{
				AccountType: tt.accType,
				Kind:        transaction.KindWithdraw,
				Amount:      decimal.NewFromInt(tt.amount),
			})
			assert.Equal(t, tt.want, fee.String())
		})
	}
}

func TestBase_Transfers(t *testing.T) {
	calc := Base()

	tests := []struct {
		accType account.Type
		want    string
	}{
		{accType: account.TypeChecking, want: "1"},
		{accType: account.TypeSavings, want: "2.5"},
		{accType: account.TypeBusiness, want: "0.5"},
	}

	for _, tt := range tests {
		t.Run(string(tt.accType), func(t *testing.T) {
			fee := calc.Fee(Context{
				AccountType: tt.accType,
				Kind:        transaction.KindTransfer,
				Amount:      decimal.NewFromInt(200),
			})
			assert.Equal(t, tt.want, fee.String())
		})
	}
}

func TestBase_DepositsAreFree(t *testing.T) {
	calc := Base()

	for _, accType := range []account.Type{account.TypeChecking, account.TypeSavings, account.TypeBusiness} {
		fee := calc.Fee(Context{
			AccountType: accType,
			Kind:        transaction.KindDeposit,
			Amount:      decimal.NewFromInt(9999),
		})
		assert.True(t, fee.IsZero(), "deposit fee for %s should be zero, got %s", accType, fee)
	}
}

func TestNew_SurchargeStacking(t *testing.T) {
	calc := New(testFeesConfig())

	base := Context{
		AccountType: account.TypeChecking,
		Kind:        transaction.KindWithdraw,
		Amount:      decimal.NewFromInt(1500),
	}

	t.Run("no surcharges", func(t *testing.T) {
		fee := calc.Fee(base)
		assert.Equal(t, "2.5", fee.String())
	})

	t.Run("foreign currency adds flat surcharge", func(t *testing.T) {
		ctx := base
		ctx.Currency = "USD"
		fee := calc.Fee(ctx)
		assert.Equal(t, "3", fee.String())
	})

	t.Run("weekend multiplies", func(t *testing.T) {
		ctx := base
		ctx.Weekend = true
		fee := calc.Fee(ctx)
		assert.Equal(t, "2.75", fee.String())
	})

	t.Run("foreign then weekend", func(t *testing.T) {
		// (2.5 + 0.5) * 1.10 = 3.30, surcharge before multiplier
		ctx := base
		ctx.Currency = "USD"
		ctx.Weekend = true
		fee := calc.Fee(ctx)
		assert.Equal(t, "3.3", fee.String())
	})

	t.Run("default currency pays no surcharge", func(t *testing.T) {
		ctx := base
		ctx.Currency = "eur"
		fee := calc.Fee(ctx)
		assert.Equal(t, "2.5", fee.String())
	})
}

func TestNew_RoundsHalfUpToTwoDecimals(t *testing.T) {
	calc := New(testFeesConfig())

	// Savings withdrawal base 1.0, foreign +0.5, weekend x1.10 = 1.65
	fee := calc.Fee(Context{
		AccountType: account.TypeSavings,
		Kind:        transaction.KindWithdraw,
		Amount:      decimal.NewFromInt(100),
		Currency:    "GBP",
		Weekend:     true,
	})
	assert.Equal(t, "1.65", fee.String())

	// Business transfer base 0.5, foreign +0.5, weekend x1.10 = 1.10
	fee = calc.Fee(Context{
		AccountType: account.TypeBusiness,
		Kind:        transaction.KindTransfer,
		Amount:      decimal.NewFromInt(100),
		Currency:    "GBP",
		Weekend:     true,
	})
	assert.Equal(t, "1.1", fee.String())
}

func TestCalculator_FeeIsNeverNegative(t *testing.T) {
	calc := New(testFeesConfig())

	fee := calc.Fee(Context{
		AccountType: account.TypeChecking,
		Kind:        transaction.KindWithdraw,
		Amount:      decimal.NewFromInt(10),
		Weekend:     true,
	})
	assert.False(t, fee.IsNegative())
	assert.True(t, fee.IsZero(), "0 * 1.10 stays 0")
}

package validation

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebank-transaction-engine/internal/config"
	"github.com/corebank-transaction-engine/internal/domain/transaction"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{
		MaxAmount:         50000,
		DailyDebitLimit:   10000,
		DepositCeiling:    10000,
		SuspendedDailyCap: 500,
	}
}

func testFraud() config.FraudConfig {
	return config.FraudConfig{
		MaxDebitsPerHour: 5,
		Window:           time.Hour,
		NightAmount:      5000,
		NightStartHour:   23,
		NightEndHour:     6,
	}
}

// stubStage records whether it ran and returns a fixed error
type stubStage struct {
	name string
	err  error
	ran  *[]string
}

func (s *stubStage) Name() string { return s.name }

func (s *stubStage) Check(ctx *Context) error {
	*s.ran = append(*s.ran, s.name)
	return s.err
}

func newStubContext() *Context {
	source := uuid.New()
	tx := transaction.New(transaction.KindWithdraw, &source, nil, decimal.NewFromInt(100), "EUR", time.Now())
	return &Context{Tx: tx, Now: time.Now()}
}

func TestChain_RunsStagesInOrder(t *testing.T) {
	var ran []string
	chain := NewBuilder(testLogger()).
		Add(&stubStage{name: "first", ran: &ran}).
		Add(&stubStage{name: "second", ran: &ran}).
		Add(&stubStage{name: "third", ran: &ran}).
		Build()

	err := chain.Check(newStubContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, ran)
}

func TestChain_ShortCircuitsOnFirstFailure(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	chain := NewBuilder(testLogger()).
		Add(&stubStage{name: "first", ran: &ran}).
		Add(&stubStage{name: "second", err: boom, ran: &ran}).
		Add(&stubStage{name: "third", ran: &ran}).
		Build()

	err := chain.Check(newStubContext())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, ran, "third stage must not run")
}

func TestStandardChain_StageOrder(t *testing.T) {
	chain := StandardChain(testLimits(), testFraud(), testLogger())
	assert.Equal(t,
		[]string{"amount", "existence", "account_state", "balance", "daily_limit", "fraud"},
		chain.Stages(),
	)
}

func TestReducedChain_StageOrder(t *testing.T) {
	chain := ReducedChain(testLimits(), testLogger())
	assert.Equal(t, []string{"amount", "existence", "balance"}, chain.Stages())
}

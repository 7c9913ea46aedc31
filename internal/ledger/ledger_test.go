package ledger

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebank-transaction-engine/internal/domain/account"
)

func newTestLedger() *Ledger {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLedger_CreateAndGet(t *testing.T) {
	ldg := newTestLedger()

	acc, err := ldg.Create(account.TypeChecking, decimal.NewFromInt(1000), account.Contact{Name: "Jane"})
	require.NoError(t, err)
	require.NotNil(t, acc)

	got, err := ldg.Get(acc.ID)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
	assert.True(t, decimal.NewFromInt(1000).Equal(got.Balance))

	// Get with no intervening mutation returns equal balances
	again, err := ldg.Get(acc.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(again.Balance))
}

func TestLedger_Create_BelowMinimum(t *testing.T) {
	ldg := newTestLedger()

	acc, err := ldg.Create(account.TypeSavings, decimal.NewFromInt(100), account.Contact{Name: "Jane"})
	require.Error(t, err)
	assert.Nil(t, acc)

	var belowMinimum account.ErrBelowMinimumDeposit
	assert.ErrorAs(t, err, &belowMinimum)
}

func TestLedger_Get_NotFound(t *testing.T) {
	ldg := newTestLedger()
	id := uuid.New()

	acc, err := ldg.Get(id)
	require.Error(t, err)
	assert.Nil(t, acc)

	var notFound ErrAccountNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, id, notFound.AccountID)
}

func TestLedger_Get_ReturnsCopy(t *testing.T) {
	ldg := newTestLedger()

	acc, err := ldg.Create(account.TypeChecking, decimal.NewFromInt(500), account.Contact{Name: "Jane"})
	require.NoError(t, err)

	// Mutating the returned snapshot must not touch the stored record
	snapshot, err := ldg.Get(acc.ID)
	require.NoError(t, err)
	snapshot.Balance = decimal.NewFromInt(999999)

	fresh, err := ldg.Get(acc.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(fresh.Balance))
}

func TestLedger_MutateBalance(t *testing.T) {
	ldg := newTestLedger()

	acc, err := ldg.Create(account.TypeChecking, decimal.NewFromInt(1000), account.Contact{Name: "Jane"})
	require.NoError(t, err)

	require.NoError(t, ldg.MutateBalance(acc.ID, decimal.NewFromInt(250)))
	require.NoError(t, ldg.MutateBalance(acc.ID, decimal.NewFromInt(-100)))

	got, err := ldg.Get(acc.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1150).Equal(got.Balance))

	err = ldg.MutateBalance(uuid.New(), decimal.NewFromInt(1))
	var notFound ErrAccountNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestLedger_ChangeState(t *testing.T) {
	ldg := newTestLedger()

	acc, err := ldg.Create(account.TypeChecking, decimal.NewFromInt(1000), account.Contact{Name: "Jane"})
	require.NoError(t, err)

	suspended, err := ldg.ChangeState(acc.ID, account.ActionSuspend)
	require.NoError(t, err)
	assert.Equal(t, account.StatusSuspended, suspended.Status)

	_, err = ldg.ChangeState(acc.ID, account.ActionClose)
	var invalid account.ErrInvalidTransition
	require.ErrorAs(t, err, &invalid)

	// The failed transition must not have changed the stored status
	got, err := ldg.Get(acc.ID)
	require.NoError(t, err)
	assert.Equal(t, account.StatusSuspended, got.Status)

	_, err = ldg.ChangeState(uuid.New(), account.ActionSuspend)
	var notFound ErrAccountNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestLedger_ApplyInterest(t *testing.T) {
	ldg := newTestLedger()

	savings, err := ldg.Create(account.TypeSavings, decimal.NewFromInt(1000), account.Contact{Name: "A"})
	require.NoError(t, err)
	business, err := ldg.Create(account.TypeBusiness, decimal.NewFromInt(2000), account.Contact{Name: "B"})
	require.NoError(t, err)
	checking, err := ldg.Create(account.TypeChecking, decimal.NewFromInt(1000), account.Contact{Name: "C"})
	require.NoError(t, err)

	credited := ldg.ApplyInterest()
	assert.Equal(t, 2, credited, "only interest-bearing accounts are credited")

	got, err := ldg.Get(savings.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1025).Equal(got.Balance), "savings at 2.5%%: got %s", got.Balance)

	got, err = ldg.Get(business.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2010).Equal(got.Balance), "business at 0.5%%: got %s", got.Balance)

	got, err = ldg.Get(checking.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(got.Balance), "checking earns no interest")
}

func TestLedger_Balances(t *testing.T) {
	ldg := newTestLedger()

	a, err := ldg.Create(account.TypeChecking, decimal.NewFromInt(1000), account.Contact{Name: "A"})
	require.NoError(t, err)
	b, err := ldg.Create(account.TypeChecking, decimal.NewFromInt(500), account.Contact{Name: "B"})
	require.NoError(t, err)

	unknown := uuid.New()
	snapshot := ldg.Balances(a.ID, b.ID, unknown)

	require.Len(t, snapshot, 2)
	assert.True(t, decimal.NewFromInt(1000).Equal(snapshot[a.ID]))
	assert.True(t, decimal.NewFromInt(500).Equal(snapshot[b.ID]))
	_, ok := snapshot[unknown]
	assert.False(t, ok)
}

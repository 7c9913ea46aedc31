package notify

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebank-transaction-engine/internal/domain/transaction"
)

func completedEvent(kind transaction.Kind, amount int64) Event {
	source := uuid.New()
	dest := uuid.New()
	tx := transaction.New(kind, &source, &dest, decimal.NewFromInt(amount), "EUR",
		time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC))
	_ = tx.Complete(decimal.Zero)
	return Event{Transaction: tx, OccurredAt: tx.CreatedAt}
}

func TestAuditObserver(t *testing.T) {
	audit := NewAuditObserver()

	event := completedEvent(transaction.KindDeposit, 250)
	require.NoError(t, audit.Receive(event))
	require.NoError(t, audit.Receive(completedEvent(transaction.KindWithdraw, 100)))

	entries := audit.Entries()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0], "2025-03-12 09:30:00")
	assert.Contains(t, entries[0], event.Transaction.ID.String())
	assert.Contains(t, entries[0], "DEPOSIT")
	assert.Contains(t, entries[0], "250.00 EUR")
	assert.Contains(t, entries[0], "COMPLETED")
	assert.Contains(t, entries[1], "WITHDRAW")

	// Entries returns a copy, the journal itself stays intact
	entries[0] = "tampered"
	assert.NotEqual(t, "tampered", audit.Entries()[0])
}

func TestStatsObserver(t *testing.T) {
	stats := NewStatsObserver()

	require.NoError(t, stats.Receive(completedEvent(transaction.KindDeposit, 100)))
	require.NoError(t, stats.Receive(completedEvent(transaction.KindDeposit, 200)))
	require.NoError(t, stats.Receive(completedEvent(transaction.KindWithdraw, 50)))

	assert.Equal(t, 3, stats.Count())
	assert.True(t, decimal.NewFromInt(350).Equal(stats.Total()))
	assert.Equal(t, 2, stats.CountByKind(transaction.KindDeposit))
	assert.Equal(t, 1, stats.CountByKind(transaction.KindWithdraw))
	assert.Equal(t, 0, stats.CountByKind(transaction.KindTransfer))
}

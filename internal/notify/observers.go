package notify

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/corebank-transaction-engine/internal/domain/transaction"
)

// AuditObserver collects a formatted journal entry for every completed
// transaction.
type AuditObserver struct {
	mu      sync.Mutex
	entries []string
}

func NewAuditObserver() *AuditObserver {
	return &AuditObserver{}
}

func (o *AuditObserver) Name() string { return "audit_log" }

func (o *AuditObserver) Receive(event Event) error {
	tx := event.Transaction
	entry := fmt.Sprintf("[%s] %s | %s | %s %s | %s",
		event.OccurredAt.Format("2006-01-02 15:04:05"),
		tx.ID.String(),
		tx.Kind,
		tx.Amount.StringFixed(2),
		tx.Currency,
		tx.Status,
	)

	o.mu.Lock()
	o.entries = append(o.entries, entry)
	o.mu.Unlock()
	return nil
}

// Entries returns a copy of the audit journal
func (o *AuditObserver) Entries() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	entries := make([]string, len(o.entries))
	copy(entries, o.entries)
	return entries
}

// StatsObserver aggregates counts and amounts of completed transactions,
// overall and per kind.
type StatsObserver struct {
	mu          sync.Mutex
	count       int
	total       decimal.Decimal
	countByKind map[transaction.Kind]int
	sumByKind   map[transaction.Kind]decimal.Decimal
}

func NewStatsObserver() *StatsObserver {
	return &StatsObserver{
		total:       decimal.Zero,
		countByKind: make(map[transaction.Kind]int),
		sumByKind:   make(map[transaction.Kind]decimal.Decimal),
	}
}

func (o *StatsObserver) Name() string { return "statistics" }

func (o *StatsObserver) Receive(event Event) error {
	tx := event.Transaction

	o.mu.Lock()
	defer o.mu.Unlock()

	o.count++
	o.total = o.total.Add(tx.Amount)
	o.countByKind[tx.Kind]++
	o.sumByKind[tx.Kind] = o.sumByKind[tx.Kind].Add(tx.Amount)
	return nil
}

// Count returns the number of completed transactions observed
func (o *StatsObserver) Count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.count
}

// Total returns the summed amount of completed transactions observed
func (o *StatsObserver) Total() decimal.Decimal {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.total
}

// CountByKind returns how many completed transactions of the kind were observed
func (o *StatsObserver) CountByKind(kind transaction.Kind) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.countByKind[kind]
}

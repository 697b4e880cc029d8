package reporting

import (
	"context"
	"sync"
	"time"

	"finance-dashboard/internal/finance"
)

// MemoryRepo is a simple in-memory reporting repository for tests and
// early development. It enforces owner isolation on reads.
type MemoryRepo struct {
	mu sync.Mutex

	Income      []finance.Income
	Expenses    []finance.Expense
	Investments []finance.Investment
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Totals(_ context.Context, ownerID string, from, to time.Time) (Totals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var t Totals
	for _, in := range r.Income {
		if in.OwnerID == ownerID && inWindow(in.Date, from, to) {
			t.IncomeMinor += in.AmountMinor
		}
	}
	for _, e := range r.Expenses {
		if e.OwnerID == ownerID && inWindow(e.Date, from, to) {
			t.ExpenseMinor += e.AmountMinor
		}
	}
	for _, inv := range r.Investments {
		if inv.OwnerID == ownerID && inWindow(inv.Date, from, to) {
			t.InvestmentMinor += inv.AmountMinor
		}
	}
	return t, nil
}

func inWindow(d, from, to time.Time) bool {
	return !d.Before(from) && d.Before(to)
}

package finance

import (
	"context"
	"sync"
)

// MemoryRepo is a simple in-memory Repository for tests and early
// development. It enforces owner isolation on reads and deletes.
type MemoryRepo struct {
	mu sync.Mutex

	income      []Income
	expenses    []Expense
	investments []Investment
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) InsertIncome(_ context.Context, in Income) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.income = append(r.income, in)
	return nil
}

func (r *MemoryRepo) ListIncome(_ context.Context, ownerID string) ([]Income, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Income
	for _, in := range r.income {
		if in.OwnerID == ownerID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (r *MemoryRepo) DeleteIncome(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, in := range r.income {
		if in.OwnerID == ownerID && in.ID == id {
			r.income = append(r.income[:i], r.income[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) InsertExpense(_ context.Context, e Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses = append(r.expenses, e)
	return nil
}

func (r *MemoryRepo) ListExpenses(_ context.Context, ownerID string) ([]Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Expense
	for _, e := range r.expenses {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *MemoryRepo) DeleteExpense(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.expenses {
		if e.OwnerID == ownerID && e.ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) InsertInvestment(_ context.Context, inv Investment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.investments = append(r.investments, inv)
	return nil
}

func (r *MemoryRepo) ListInvestments(_ context.Context, ownerID string) ([]Investment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Investment
	for _, inv := range r.investments {
		if inv.OwnerID == ownerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *MemoryRepo) DeleteInvestment(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, inv := range r.investments {
		if inv.OwnerID == ownerID && inv.ID == id {
			r.investments = append(r.investments[:i], r.investments[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

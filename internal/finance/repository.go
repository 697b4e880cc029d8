package finance

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("finance: not found")
	ErrInvalidArgument = errors.New("finance: invalid argument")
)

// Repository abstracts persistence for finance records.
//
// Every method takes the owning user id and must enforce owner filtering;
// a record is invisible to anyone but its owner.
type Repository interface {
	InsertIncome(ctx context.Context, in Income) error
	ListIncome(ctx context.Context, ownerID string) ([]Income, error)
	DeleteIncome(ctx context.Context, ownerID, id string) error

	InsertExpense(ctx context.Context, e Expense) error
	ListExpenses(ctx context.Context, ownerID string) ([]Expense, error)
	DeleteExpense(ctx context.Context, ownerID, id string) error

	InsertInvestment(ctx context.Context, inv Investment) error
	ListInvestments(ctx context.Context, ownerID string) ([]Investment, error)
	DeleteInvestment(ctx context.Context, ownerID, id string) error
}

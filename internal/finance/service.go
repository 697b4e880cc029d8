package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service provides owner-scoped CRUD over finance records.
type Service struct {
	repo Repository
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) AddIncome(ctx context.Context, ownerID string, in Income) (Income, error) {
	if ownerID == "" || in.AmountMinor <= 0 || in.Source == "" || in.Date.IsZero() {
		return Income{}, ErrInvalidArgument
	}
	in.ID = uuid.NewString()
	in.OwnerID = ownerID
	in.CreatedAt = s.clock().UTC()
	if err := s.repo.InsertIncome(ctx, in); err != nil {
		return Income{}, err
	}
	return in, nil
}

func (s *Service) ListIncome(ctx context.Context, ownerID string) ([]Income, error) {
	if ownerID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListIncome(ctx, ownerID)
}

func (s *Service) DeleteIncome(ctx context.Context, ownerID, id string) error {
	if ownerID == "" || id == "" {
		return ErrInvalidArgument
	}
	return s.repo.DeleteIncome(ctx, ownerID, id)
}

func (s *Service) AddExpense(ctx context.Context, ownerID string, e Expense) (Expense, error) {
	if ownerID == "" || e.AmountMinor <= 0 || e.Category == "" || e.Date.IsZero() {
		return Expense{}, ErrInvalidArgument
	}
	e.ID = uuid.NewString()
	e.OwnerID = ownerID
	e.CreatedAt = s.clock().UTC()
	if err := s.repo.InsertExpense(ctx, e); err != nil {
		return Expense{}, err
	}
	return e, nil
}

func (s *Service) ListExpenses(ctx context.Context, ownerID string) ([]Expense, error) {
	if ownerID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListExpenses(ctx, ownerID)
}

func (s *Service) DeleteExpense(ctx context.Context, ownerID, id string) error {
	if ownerID == "" || id == "" {
		return ErrInvalidArgument
	}
	return s.repo.DeleteExpense(ctx, ownerID, id)
}

func (s *Service) AddInvestment(ctx context.Context, ownerID string, inv Investment) (Investment, error) {
	if ownerID == "" || inv.AmountMinor <= 0 || inv.Type == "" || inv.Date.IsZero() {
		return Investment{}, ErrInvalidArgument
	}
	inv.ID = uuid.NewString()
	inv.OwnerID = ownerID
	inv.CreatedAt = s.clock().UTC()
	if err := s.repo.InsertInvestment(ctx, inv); err != nil {
		return Investment{}, err
	}
	return inv, nil
}

func (s *Service) ListInvestments(ctx context.Context, ownerID string) ([]Investment, error) {
	if ownerID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListInvestments(ctx, ownerID)
}

func (s *Service) DeleteInvestment(ctx context.Context, ownerID, id string) error {
	if ownerID == "" || id == "" {
		return ErrInvalidArgument
	}
	return s.repo.DeleteInvestment(ctx, ownerID, id)
}

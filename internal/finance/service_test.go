package finance

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAddAndListIncomeIsOwnerScoped(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	added, err := svc.AddIncome(ctx, "owner-1", Income{AmountMinor: 250000, Source: "salary", Date: date})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" || added.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at to be filled: %+v", added)
	}

	if _, err := svc.AddIncome(ctx, "owner-2", Income{AmountMinor: 100, Source: "other", Date: date}); err != nil {
		t.Fatalf("add for owner-2: %v", err)
	}

	got, err := svc.ListIncome(ctx, "owner-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != added.ID {
		t.Fatalf("owner-1 must only see their own records: %+v", got)
	}
}

func TestAddIncomeValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		ownerID string
		in      Income
	}{
		{"missing owner", "", Income{AmountMinor: 1, Source: "x", Date: date}},
		{"zero amount", "o", Income{AmountMinor: 0, Source: "x", Date: date}},
		{"negative amount", "o", Income{AmountMinor: -5, Source: "x", Date: date}},
		{"missing source", "o", Income{AmountMinor: 1, Date: date}},
		{"missing date", "o", Income{AmountMinor: 1, Source: "x"}},
	}
	for _, tc := range cases {
		if _, err := svc.AddIncome(ctx, tc.ownerID, tc.in); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: got %v, want ErrInvalidArgument", tc.name, err)
		}
	}
}

func TestDeleteExpenseEnforcesOwner(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	e, err := svc.AddExpense(ctx, "owner-1", Expense{AmountMinor: 4200, Category: "groceries", Date: date})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.DeleteExpense(ctx, "owner-2", e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign owner delete: got %v, want ErrNotFound", err)
	}
	if err := svc.DeleteExpense(ctx, "owner-1", e.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.DeleteExpense(ctx, "owner-1", e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestAddInvestment(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	inv, err := svc.AddInvestment(ctx, "owner-1", Investment{
		AmountMinor: 1000000,
		Type:        "index_fund",
		ReturnRate:  0.07,
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := svc.ListInvestments(ctx, "owner-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != inv.ID || got[0].ReturnRate != 0.07 {
		t.Fatalf("unexpected investments: %+v", got)
	}
}

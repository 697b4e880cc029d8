package finance

import (
	"context"
	"database/sql"
)

// PostgresRepo persists finance records across three tables (income,
// expenses, investments), each keyed by uuid with an owner_id column
// carrying the owning user id.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) InsertIncome(ctx context.Context, in Income) error {
	const q = `
INSERT INTO income (id, owner_id, amount_minor, source, date, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.db.ExecContext(ctx, q, in.ID, in.OwnerID, in.AmountMinor, in.Source, in.Date, in.Description, in.CreatedAt)
	return err
}

func (r *PostgresRepo) ListIncome(ctx context.Context, ownerID string) ([]Income, error) {
	const q = `
SELECT id, owner_id, amount_minor, source, date, description, created_at
FROM income
WHERE owner_id = $1
ORDER BY date DESC, created_at DESC
`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Income
	for rows.Next() {
		var in Income
		if err := rows.Scan(&in.ID, &in.OwnerID, &in.AmountMinor, &in.Source, &in.Date, &in.Description, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) DeleteIncome(ctx context.Context, ownerID, id string) error {
	const q = `DELETE FROM income WHERE owner_id = $1 AND id = $2`
	return r.execOne(ctx, q, ownerID, id)
}

func (r *PostgresRepo) InsertExpense(ctx context.Context, e Expense) error {
	const q = `
INSERT INTO expenses (id, owner_id, amount_minor, category, date, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.db.ExecContext(ctx, q, e.ID, e.OwnerID, e.AmountMinor, e.Category, e.Date, e.Notes, e.CreatedAt)
	return err
}

func (r *PostgresRepo) ListExpenses(ctx context.Context, ownerID string) ([]Expense, error) {
	const q = `
SELECT id, owner_id, amount_minor, category, date, notes, created_at
FROM expenses
WHERE owner_id = $1
ORDER BY date DESC, created_at DESC
`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.AmountMinor, &e.Category, &e.Date, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) DeleteExpense(ctx context.Context, ownerID, id string) error {
	const q = `DELETE FROM expenses WHERE owner_id = $1 AND id = $2`
	return r.execOne(ctx, q, ownerID, id)
}

func (r *PostgresRepo) InsertInvestment(ctx context.Context, inv Investment) error {
	const q = `
INSERT INTO investments (id, owner_id, amount_minor, type, return_rate, date, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.db.ExecContext(ctx, q, inv.ID, inv.OwnerID, inv.AmountMinor, inv.Type, inv.ReturnRate, inv.Date, inv.Description, inv.CreatedAt)
	return err
}

func (r *PostgresRepo) ListInvestments(ctx context.Context, ownerID string) ([]Investment, error) {
	const q = `
SELECT id, owner_id, amount_minor, type, return_rate, date, description, created_at
FROM investments
WHERE owner_id = $1
ORDER BY date DESC, created_at DESC
`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Investment
	for rows.Next() {
		var inv Investment
		if err := rows.Scan(&inv.ID, &inv.OwnerID, &inv.AmountMinor, &inv.Type, &inv.ReturnRate, &inv.Date, &inv.Description, &inv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) DeleteInvestment(ctx context.Context, ownerID, id string) error {
	const q = `DELETE FROM investments WHERE owner_id = $1 AND id = $2`
	return r.execOne(ctx, q, ownerID, id)
}

func (r *PostgresRepo) execOne(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

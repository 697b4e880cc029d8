package reporting

import (
	"context"
	"database/sql"
	"time"
)

// PostgresRepo aggregates directly over the finance tables.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Totals(ctx context.Context, ownerID string, from, to time.Time) (Totals, error) {
	const q = `
SELECT
  COALESCE((SELECT SUM(amount_minor) FROM income      WHERE owner_id = $1 AND date >= $2 AND date < $3), 0),
  COALESCE((SELECT SUM(amount_minor) FROM expenses    WHERE owner_id = $1 AND date >= $2 AND date < $3), 0),
  COALESCE((SELECT SUM(amount_minor) FROM investments WHERE owner_id = $1 AND date >= $2 AND date < $3), 0)
`
	var t Totals
	if err := r.db.QueryRowContext(ctx, q, ownerID, from, to).Scan(
		&t.IncomeMinor,
		&t.ExpenseMinor,
		&t.InvestmentMinor,
	); err != nil {
		return Totals{}, err
	}
	return t, nil
}

package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo appends events to the audit_events table. The table should
// carry an INSERT-only policy; there is deliberately no read path here.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (id, type, subject, detail, created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := r.db.ExecContext(ctx, q, e.ID, string(e.Type), e.Subject, e.Detail, e.CreatedAt)
	return err
}

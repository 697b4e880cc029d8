package user

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresStore persists accounts in the users table:
//
//	users (id uuid PK, email text UNIQUE, password_hash text,
//	       role text, enabled boolean, created_at timestamptz)
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) Create(ctx context.Context, u User) error {
	const q = `
INSERT INTO users (id, email, password_hash, role, enabled, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (email) DO NOTHING
`
	res, err := s.db.ExecContext(ctx, q, u.ID, u.Email, u.PasswordHash, u.Role, u.Enabled, u.CreatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *PostgresStore) ByEmail(ctx context.Context, email string) (User, error) {
	const q = `
SELECT id, email, password_hash, role, enabled, created_at
FROM users
WHERE email = $1
`
	return s.scanOne(s.db.QueryRowContext(ctx, q, email))
}

func (s *PostgresStore) ByID(ctx context.Context, id string) (User, error) {
	const q = `
SELECT id, email, password_hash, role, enabled, created_at
FROM users
WHERE id = $1
`
	return s.scanOne(s.db.QueryRowContext(ctx, q, id))
}

func (s *PostgresStore) Enable(ctx context.Context, email string) error {
	const q = `UPDATE users SET enabled = TRUE WHERE email = $1`
	res, err := s.db.ExecContext(ctx, q, email)
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

func (s *PostgresStore) scanOne(row *sql.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Enabled, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

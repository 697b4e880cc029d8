package registration

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"finance-dashboard/pkg/utils"

	"github.com/google/uuid"
)

// PostgresStore persists confirmation tokens.
//
// Table:
//
//	CREATE TABLE confirmation_tokens (
//	    user_email TEXT PRIMARY KEY,
//	    token      TEXT NOT NULL UNIQUE,
//	    expires_at TIMESTAMPTZ NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db    *sql.DB
	ttl   time.Duration
	clock func() time.Time
}

func NewPostgresStore(db *sql.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, clock: time.Now}
}

func (s *PostgresStore) Create(ctx context.Context, userEmail string) (ConfirmationToken, error) {
	now := s.clock().UTC()
	ct := ConfirmationToken{
		Token:     uuid.NewString(),
		UserEmail: userEmail,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	const q = `
INSERT INTO confirmation_tokens (user_email, token, expires_at, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_email) DO UPDATE
SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at
`
	if _, err := s.db.ExecContext(ctx, q, ct.UserEmail, ct.Token, ct.ExpiresAt, ct.CreatedAt); err != nil {
		return ConfirmationToken{}, err
	}
	return ct, nil
}

func (s *PostgresStore) Redeem(ctx context.Context, token string) (ConfirmationToken, error) {
	var out ConfirmationToken
	err := utils.WithTx(ctx, s.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const sel = `
SELECT user_email, token, expires_at, created_at
FROM confirmation_tokens
WHERE token = $1
FOR UPDATE
`
		var ct ConfirmationToken
		err := tx.QueryRowContext(ctx, sel, token).Scan(&ct.UserEmail, &ct.Token, &ct.ExpiresAt, &ct.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTokenNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM confirmation_tokens WHERE token = $1`, token); err != nil {
			return err
		}
		if !s.clock().UTC().Before(ct.ExpiresAt) {
			return ErrTokenExpired
		}
		out = ct
		return nil
	})
	if errors.Is(err, ErrTokenExpired) {
		// the delete must survive the rollback; expired rows never linger
		_, _ = s.db.ExecContext(ctx, `DELETE FROM confirmation_tokens WHERE token = $1`, token)
	}
	if err != nil {
		return ConfirmationToken{}, err
	}
	return out, nil
}

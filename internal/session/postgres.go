package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"finance-dashboard/pkg/utils"

	"github.com/google/uuid"
)

// PostgresStore keeps refresh tokens in the refresh_tokens table:
//
//	refresh_tokens (user_email text PK, token text UNIQUE,
//	                expires_at timestamptz, created_at timestamptz)
//
// The UNIQUE token column plus row locks inside WithTx give Rotate its
// compare-and-swap semantics.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewPostgresStore(db *sql.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, clock: time.Now}
}

func (s *PostgresStore) Create(ctx context.Context, userEmail string) (RefreshToken, error) {
	now := s.clock().UTC()
	rt := RefreshToken{
		Token:     uuid.NewString(),
		UserEmail: userEmail,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	// On replace the row keeps its original created_at; RETURNING keeps the
	// struct in line with what is actually stored.
	const q = `
INSERT INTO refresh_tokens (user_email, token, expires_at, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_email) DO UPDATE
SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at
RETURNING created_at
`
	if err := s.db.QueryRowContext(ctx, q, rt.UserEmail, rt.Token, rt.ExpiresAt, rt.CreatedAt).Scan(&rt.CreatedAt); err != nil {
		return RefreshToken{}, err
	}
	return rt, nil
}

func (s *PostgresStore) FindByToken(ctx context.Context, token string) (RefreshToken, error) {
	const q = `
SELECT user_email, token, expires_at, created_at
FROM refresh_tokens
WHERE token = $1
`
	return scanToken(s.db.QueryRowContext(ctx, q, token))
}

func (s *PostgresStore) FindByUser(ctx context.Context, userEmail string) (RefreshToken, error) {
	const q = `
SELECT user_email, token, expires_at, created_at
FROM refresh_tokens
WHERE user_email = $1
`
	return scanToken(s.db.QueryRowContext(ctx, q, userEmail))
}

func (s *PostgresStore) VerifyExpiration(ctx context.Context, token string) (RefreshToken, error) {
	var out RefreshToken
	var expired bool
	err := utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		rt, err := lockToken(ctx, tx, token)
		if err != nil {
			return err
		}
		expired, err = s.purgeIfExpired(ctx, tx, rt)
		if err != nil || expired {
			// returning nil on expiry commits the purge; WithTx would roll
			// the delete back with the sentinel
			return err
		}
		out = rt
		return nil
	})
	if err != nil {
		return RefreshToken{}, err
	}
	if expired {
		return RefreshToken{}, ErrTokenExpired
	}
	return out, nil
}

func (s *PostgresStore) Rotate(ctx context.Context, token string) (RefreshToken, error) {
	var out RefreshToken
	var expired bool
	err := utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		rt, err := lockToken(ctx, tx, token)
		if err != nil {
			return err
		}
		expired, err = s.purgeIfExpired(ctx, tx, rt)
		if err != nil || expired {
			return err
		}

		newValue := uuid.NewString()
		expiresAt := s.clock().UTC().Add(s.ttl)

		// CAS on the token value. Under the row lock a concurrent rotation
		// of the same value has either not run (we win) or already swapped
		// the value (zero rows here, loser fails as not-found).
		const upd = `
UPDATE refresh_tokens
SET token = $2, expires_at = $3
WHERE token = $1
`
		res, err := tx.ExecContext(ctx, upd, token, newValue, expiresAt)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrTokenNotFound
		}

		rt.Token = newValue
		rt.ExpiresAt = expiresAt
		out = rt
		return nil
	})
	if err != nil {
		return RefreshToken{}, err
	}
	if expired {
		return RefreshToken{}, ErrTokenExpired
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, token string) (bool, error) {
	const q = `DELETE FROM refresh_tokens WHERE token = $1`
	res, err := s.db.ExecContext(ctx, q, token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *PostgresStore) DeleteAllForUser(ctx context.Context, userEmail string) error {
	const q = `DELETE FROM refresh_tokens WHERE user_email = $1`
	_, err := s.db.ExecContext(ctx, q, userEmail)
	return err
}

// purgeIfExpired deletes rt inside the transaction when it is past expiry.
// It reports expiry instead of returning ErrTokenExpired: the delete has to
// commit, so callers raise the sentinel only after the transaction ends.
func (s *PostgresStore) purgeIfExpired(ctx context.Context, tx *sql.Tx, rt RefreshToken) (bool, error) {
	if s.clock().UTC().Before(rt.ExpiresAt) {
		return false, nil
	}
	const del = `DELETE FROM refresh_tokens WHERE token = $1`
	if _, err := tx.ExecContext(ctx, del, rt.Token); err != nil {
		return false, err
	}
	return true, nil
}

func lockToken(ctx context.Context, tx *sql.Tx, token string) (RefreshToken, error) {
	// Lock the row to serialize concurrent verify/rotate on one token.
	const q = `
SELECT user_email, token, expires_at, created_at
FROM refresh_tokens
WHERE token = $1
FOR UPDATE
`
	return scanToken(tx.QueryRowContext(ctx, q, token))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanToken(row rowScanner) (RefreshToken, error) {
	var rt RefreshToken
	if err := row.Scan(&rt.UserEmail, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RefreshToken{}, ErrTokenNotFound
		}
		return RefreshToken{}, err
	}
	return rt, nil
}

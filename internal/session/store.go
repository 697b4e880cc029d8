package session

import (
	"context"
	"errors"
)

var (
	// ErrTokenNotFound covers both never-issued values and values already
	// consumed by a rotation.
	ErrTokenNotFound = errors.New("session: refresh token not found")
	// ErrTokenExpired is distinct from not-found so callers can tell the
	// client to restart login instead of retrying.
	ErrTokenExpired = errors.New("session: refresh token expired")
)

// Store is the persistence contract for refresh tokens.
//
// Rotate must execute its verify-then-swap as a single atomic unit: of two
// concurrent Rotate calls for the same value, exactly one wins; the loser
// gets ErrTokenNotFound. VerifyExpiration and Rotate delete expired rows as
// a side effect; an expired token never survives being checked.
type Store interface {
	// Create issues a fresh token value for the user, replacing any
	// existing row in place (at most one row per user).
	Create(ctx context.Context, userEmail string) (RefreshToken, error)
	FindByToken(ctx context.Context, token string) (RefreshToken, error)
	FindByUser(ctx context.Context, userEmail string) (RefreshToken, error)
	// VerifyExpiration returns the record unchanged while it is live;
	// if it has expired the row is deleted and ErrTokenExpired returned.
	VerifyExpiration(ctx context.Context, token string) (RefreshToken, error)
	// Rotate atomically swaps the token value and extends expiry.
	Rotate(ctx context.Context, token string) (RefreshToken, error)
	// Delete removes the row; deleting an absent token is not an error,
	// the boolean reports whether anything was removed.
	Delete(ctx context.Context, token string) (bool, error)
	DeleteAllForUser(ctx context.Context, userEmail string) error
}

package registration

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTokenNotFound = errors.New("registration: confirmation token not found")
	ErrTokenExpired  = errors.New("registration: confirmation token expired")
)

// ConfirmationToken is a single-use token mailed to a new account. It is
// redeemed exactly once; redemption deletes the row.
type ConfirmationToken struct {
	Token     string    `json:"-"`
	UserEmail string    `json:"user_email"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence contract for confirmation tokens.
type Store interface {
	// Create issues a fresh token for userEmail. A second Create for the
	// same user replaces the earlier token.
	Create(ctx context.Context, userEmail string) (ConfirmationToken, error)
	// Redeem consumes a token. It deletes the row whether the token is
	// live or expired; an expired token returns ErrTokenExpired after
	// deletion so redemption can never be retried.
	Redeem(ctx context.Context, token string) (ConfirmationToken, error)
}

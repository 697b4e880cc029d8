package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("user: not found")
	ErrAlreadyExists = errors.New("user: already exists")
)

// Store is the persistence contract for accounts.
type Store interface {
	Create(ctx context.Context, u User) error
	ByEmail(ctx context.Context, email string) (User, error)
	ByID(ctx context.Context, id string) (User, error)
	// Enable flips the enabled flag; used once by the registration flow
	// when a confirmation token is redeemed.
	Enable(ctx context.Context, email string) error
}

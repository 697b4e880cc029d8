package user

import (
	"context"
	"fmt"

	"finance-dashboard/internal/auth"
)

// Service wraps the account store with the lookups the auth core needs.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

// ResolveSubject implements auth.UserResolver: a token subject maps to a
// live identity only while the account exists and is enabled.
func (s *Service) ResolveSubject(ctx context.Context, email string) (auth.Identity, error) {
	u, err := s.store.ByEmail(ctx, email)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("resolve subject: %w", err)
	}
	if !u.Enabled {
		return auth.Identity{}, fmt.Errorf("resolve subject: account disabled")
	}
	return auth.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

// VerifyCredentials checks an email+password pair against the stored hash.
// The result is deliberately a plain boolean: unknown user, disabled account
// and wrong password are indistinguishable to the caller.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (User, bool) {
	u, err := s.store.ByEmail(ctx, email)
	if err != nil {
		// dummy compare: unknown users must cost the same as a mismatch
		auth.CheckPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B0a6PZ7rE0eQn0mXoXhF0R1u2YVS", password)
		return User{}, false
	}
	if !u.Enabled {
		return User{}, false
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return User{}, false
	}
	return u, true
}

// ByEmail exposes the raw lookup for collaborators outside the auth path.
func (s *Service) ByEmail(ctx context.Context, email string) (User, error) {
	return s.store.ByEmail(ctx, email)
}

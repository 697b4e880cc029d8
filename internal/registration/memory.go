package registration

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and early development.
type MemoryStore struct {
	mu     sync.Mutex
	byTok  map[string]ConfirmationToken
	byUser map[string]string // userEmail -> token
	ttl    time.Duration
	clock  func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		byTok:  map[string]ConfirmationToken{},
		byUser: map[string]string{},
		ttl:    ttl,
		clock:  time.Now,
	}
}

// SetClock swaps the time source; tests use it to age tokens.
func (s *MemoryStore) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

func (s *MemoryStore) Create(_ context.Context, userEmail string) (ConfirmationToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byUser[userEmail]; ok {
		delete(s.byTok, old)
	}

	now := s.clock().UTC()
	ct := ConfirmationToken{
		Token:     uuid.NewString(),
		UserEmail: userEmail,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	s.byTok[ct.Token] = ct
	s.byUser[userEmail] = ct.Token
	return ct, nil
}

// TokenFor exposes the live token for a user; tests stand in for the
// notifier with it.
func (s *MemoryStore) TokenFor(userEmail string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.byUser[userEmail]
	return tok, ok
}

func (s *MemoryStore) Redeem(_ context.Context, token string) (ConfirmationToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, ok := s.byTok[token]
	if !ok {
		return ConfirmationToken{}, ErrTokenNotFound
	}
	delete(s.byTok, token)
	delete(s.byUser, ct.UserEmail)

	if !s.clock().UTC().Before(ct.ExpiresAt) {
		return ConfirmationToken{}, ErrTokenExpired
	}
	return ct, nil
}

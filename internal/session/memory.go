package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and early development.
// It mirrors the Postgres store's atomicity contract under a single mutex.
type MemoryStore struct {
	mu     sync.Mutex
	byUser map[string]RefreshToken
	ttl    time.Duration
	clock  func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{byUser: map[string]RefreshToken{}, ttl: ttl, clock: time.Now}
}

// SetClock overrides the time source; tests use it to force expiry.
func (s *MemoryStore) SetClock(clock func() time.Time) { s.clock = clock }

func (s *MemoryStore) Create(_ context.Context, userEmail string) (RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock().UTC()
	rt := RefreshToken{
		Token:     uuid.NewString(),
		UserEmail: userEmail,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if prev, ok := s.byUser[userEmail]; ok {
		// replace in place, keep the original creation time
		rt.CreatedAt = prev.CreatedAt
	}
	s.byUser[userEmail] = rt
	return rt, nil
}

func (s *MemoryStore) FindByToken(_ context.Context, token string) (RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(token)
}

func (s *MemoryStore) FindByUser(_ context.Context, userEmail string) (RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.byUser[userEmail]
	if !ok {
		return RefreshToken{}, ErrTokenNotFound
	}
	return rt, nil
}

func (s *MemoryStore) VerifyExpiration(_ context.Context, token string) (RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verifyLocked(token)
}

func (s *MemoryStore) Rotate(_ context.Context, token string) (RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, err := s.verifyLocked(token)
	if err != nil {
		return RefreshToken{}, err
	}
	rt.Token = uuid.NewString()
	rt.ExpiresAt = s.clock().UTC().Add(s.ttl)
	s.byUser[rt.UserEmail] = rt
	return rt, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, err := s.findLocked(token)
	if err != nil {
		return false, nil
	}
	delete(s.byUser, rt.UserEmail)
	return true, nil
}

func (s *MemoryStore) DeleteAllForUser(_ context.Context, userEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userEmail)
	return nil
}

// Len reports the number of live rows; tests use it to assert the
// one-row-per-user invariant.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byUser)
}

func (s *MemoryStore) findLocked(token string) (RefreshToken, error) {
	for _, rt := range s.byUser {
		if rt.Token == token {
			return rt, nil
		}
	}
	return RefreshToken{}, ErrTokenNotFound
}

func (s *MemoryStore) verifyLocked(token string) (RefreshToken, error) {
	rt, err := s.findLocked(token)
	if err != nil {
		return RefreshToken{}, err
	}
	if !s.clock().UTC().Before(rt.ExpiresAt) {
		delete(s.byUser, rt.UserEmail)
		return RefreshToken{}, ErrTokenExpired
	}
	return rt, nil
}

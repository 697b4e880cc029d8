package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-dashboard/internal/audit"
	"finance-dashboard/internal/auth"
	"finance-dashboard/internal/user"
	"finance-dashboard/pkg/logger"
	"finance-dashboard/pkg/utils"
)

var (
	// ErrInvalidCredentials covers unknown users, disabled accounts and
	// wrong passwords alike; the distinction must not leak to clients.
	ErrInvalidCredentials = errors.New("session: invalid email or password")
	// ErrInvalidRefreshToken means the value is unknown (never issued,
	// already rotated, or logged out). HTTP 401.
	ErrInvalidRefreshToken = errors.New("session: invalid refresh token")
	// ErrRefreshTokenExpired means the value was genuine but past expiry;
	// the client must log in again. HTTP 403.
	ErrRefreshTokenExpired = errors.New("session: refresh token expired")
)

// CredentialVerifier is the user-service surface the issuer needs.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, email, password string) (user.User, bool)
}

// Service orchestrates login, refresh and logout.
//
// The codec mints stateless access tokens; the store owns the one mutable
// piece of session state, the per-user refresh token row. A failed login
// leaves the store untouched; a failed refresh mutates nothing beyond
// purging the expired row.
type Service struct {
	users CredentialVerifier
	codec *auth.Manager
	store Store
	audit *audit.Service
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(users CredentialVerifier, codec *auth.Manager, store Store, auditor *audit.Service) *Service {
	return &Service{users: users, codec: codec, store: store, audit: auditor, clock: time.Now}
}

// Authenticate verifies credentials and issues a token pair. Afterward
// exactly one refresh-token row exists for the user (insert-or-replace).
func (s *Service) Authenticate(ctx context.Context, email, password string) (TokenPair, error) {
	u, ok := s.users.VerifyCredentials(ctx, email, password)
	if !ok {
		logger.From(ctx).Warn("login rejected", "email", utils.MaskEmail(email))
		_ = s.audit.LogAuth(ctx, audit.EventTypeLoginFailure, email, "invalid credentials")
		return TokenPair{}, ErrInvalidCredentials
	}

	access, err := s.codec.IssueAccessToken(s.clock().UTC(), u.Email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}

	rt, err := s.store.Create(ctx, u.Email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("create refresh token: %w", err)
	}

	logger.From(ctx).Info("login", "email", utils.MaskEmail(u.Email))
	_ = s.audit.LogAuth(ctx, audit.EventTypeLoginSuccess, u.Email, "")

	return TokenPair{AccessToken: access, RefreshToken: rt.Token}, nil
}

// Refresh rotates a refresh token and mints a new access token. The old
// refresh value is permanently invalid the instant rotation succeeds; a
// concurrent refresh with the same value gets ErrInvalidRefreshToken.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	rt, err := s.store.Rotate(ctx, refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenNotFound):
			logger.From(ctx).Warn("refresh rejected", "token", utils.MaskToken(refreshToken))
			return TokenPair{}, ErrInvalidRefreshToken
		case errors.Is(err, ErrTokenExpired):
			logger.From(ctx).Warn("refresh expired", "token", utils.MaskToken(refreshToken))
			return TokenPair{}, ErrRefreshTokenExpired
		default:
			return TokenPair{}, fmt.Errorf("rotate refresh token: %w", err)
		}
	}

	access, err := s.codec.IssueAccessToken(s.clock().UTC(), rt.UserEmail)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}

	_ = s.audit.LogAuth(ctx, audit.EventTypeTokenRefresh, rt.UserEmail, "")

	return TokenPair{AccessToken: access, RefreshToken: rt.Token}, nil
}

// Logout revokes a refresh token. Revoking an absent token succeeds; the
// client's view is idempotent.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	deleted, err := s.store.Delete(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	if deleted {
		_ = s.audit.LogAuth(ctx, audit.EventTypeLogout, "", utils.MaskToken(refreshToken))
	}
	return nil
}

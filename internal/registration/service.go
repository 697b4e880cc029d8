package registration

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"finance-dashboard/internal/audit"
	"finance-dashboard/internal/auth"
	"finance-dashboard/internal/rbac"
	"finance-dashboard/internal/user"
	"finance-dashboard/pkg/logger"
	"finance-dashboard/pkg/utils"

	"github.com/google/uuid"
)

const minPasswordLen = 8

var (
	ErrInvalidEmail = errors.New("registration: invalid email address")
	ErrWeakPassword = errors.New("registration: password too short")
	ErrEmailTaken   = errors.New("registration: email already registered")
	// ErrInvalidConfirmation covers unknown and already-redeemed tokens.
	ErrInvalidConfirmation = errors.New("registration: invalid confirmation token")
	// ErrConfirmationExpired means the token was genuine but past its TTL;
	// the user must register again.
	ErrConfirmationExpired = errors.New("registration: confirmation token expired")
)

// Service handles account sign-up and confirmation.
//
// Accounts start disabled; only redeeming the confirmation token enables
// them, and a disabled account can neither log in nor pass the gate.
type Service struct {
	users  user.Store
	tokens Store
	notify Notifier
	audit  *audit.Service
	clock  func() time.Time
}

func NewService(users user.Store, tokens Store, notify Notifier, auditor *audit.Service) *Service {
	if notify == nil {
		notify = LogNotifier{}
	}
	return &Service{users: users, tokens: tokens, notify: notify, audit: auditor, clock: time.Now}
}

// Register creates a disabled account and issues its confirmation token.
func (s *Service) Register(ctx context.Context, email, password string) (ConfirmationToken, error) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ConfirmationToken{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return ConfirmationToken{}, ErrWeakPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return ConfirmationToken{}, fmt.Errorf("hash password: %w", err)
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         rbac.RoleUser,
		Enabled:      false,
		CreatedAt:    s.clock().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			return ConfirmationToken{}, ErrEmailTaken
		}
		return ConfirmationToken{}, fmt.Errorf("create user: %w", err)
	}

	ct, err := s.tokens.Create(ctx, email)
	if err != nil {
		return ConfirmationToken{}, fmt.Errorf("create confirmation token: %w", err)
	}

	if err := s.notify.ConfirmationIssued(ctx, email, ct); err != nil {
		logger.From(ctx).Warn("confirmation delivery failed", "email", utils.MaskEmail(email), "err", err)
	}
	_ = s.audit.LogAuth(ctx, audit.EventTypeRegistration, email, "")

	return ct, nil
}

// Confirm redeems a confirmation token and enables the account.
func (s *Service) Confirm(ctx context.Context, token string) error {
	ct, err := s.tokens.Redeem(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenNotFound):
			return ErrInvalidConfirmation
		case errors.Is(err, ErrTokenExpired):
			return ErrConfirmationExpired
		default:
			return fmt.Errorf("redeem confirmation token: %w", err)
		}
	}

	if err := s.users.Enable(ctx, ct.UserEmail); err != nil {
		return fmt.Errorf("enable account: %w", err)
	}

	logger.From(ctx).Info("account confirmed", "email", utils.MaskEmail(ct.UserEmail))
	_ = s.audit.LogAuth(ctx, audit.EventTypeAccountEnabled, ct.UserEmail, "")
	return nil
}

package audit

import (
	"context"
	"errors"
	"time"

	"finance-dashboard/pkg/utils"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records auth-flow audit events.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s == nil || s.repo == nil {
		// audit not configured; callers treat logging as best-effort
		return nil
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogAuth records an auth event for the given subject email. The email is
// masked before it is persisted.
func (s *Service) LogAuth(ctx context.Context, t EventType, subjectEmail, detail string) error {
	return s.Append(ctx, Event{
		Type:    t,
		Subject: utils.MaskEmail(subjectEmail),
		Detail:  detail,
	})
}

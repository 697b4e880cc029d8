package registration

import (
	"context"

	"finance-dashboard/pkg/logger"
	"finance-dashboard/pkg/utils"
)

// Notifier delivers a confirmation token to a freshly registered user.
// The default implementation only logs; a mail sender plugs in here.
type Notifier interface {
	ConfirmationIssued(ctx context.Context, email string, ct ConfirmationToken) error
}

// LogNotifier writes the confirmation event to the structured log with
// both the email and the token masked.
type LogNotifier struct{}

func (LogNotifier) ConfirmationIssued(ctx context.Context, email string, ct ConfirmationToken) error {
	logger.From(ctx).Info("confirmation token issued",
		"email", utils.MaskEmail(email),
		"token", utils.MaskToken(ct.Token),
		"expires_at", ct.ExpiresAt,
	)
	return nil
}

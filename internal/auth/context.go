package auth

import (
	"context"
	"errors"
)

type ctxKey int

const ctxIdentity ctxKey = iota

// Identity is the request-scoped security context established by the gate.
// It is created fresh per request and must never outlive the request.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// WithIdentity attaches an identity to ctx. If ctx already carries an
// identity it is returned unchanged; the gate sets identity at most once
// per request lifecycle.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	if _, err := IdentityFrom(ctx); err == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxIdentity, id)
}

// IdentityFrom returns the identity established for this request.
func IdentityFrom(ctx context.Context) (Identity, error) {
	if id, ok := ctx.Value(ctxIdentity).(Identity); ok && id.Email != "" {
		return id, nil
	}
	return Identity{}, errors.New("identity not in context")
}

// UserID is a convenience accessor for the authenticated user id.
func UserID(ctx context.Context) (string, error) {
	id, err := IdentityFrom(ctx)
	if err != nil {
		return "", err
	}
	return id.UserID, nil
}

// Role is a convenience accessor for the authenticated role.
func Role(ctx context.Context) (string, error) {
	id, err := IdentityFrom(ctx)
	if err != nil {
		return "", err
	}
	return id.Role, nil
}

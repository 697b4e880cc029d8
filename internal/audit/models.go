package audit

import "time"

// Event is an immutable, append-only record of an auth-flow decision.
//
// Invariants:
// - Events are never updated or deleted.
// - Subject is stored masked; events must never contain a usable
//   credential, token or full email address.
// - Audit capture is best-effort; critical flows never block on it.
type Event struct {
	ID string `json:"id" db:"id"`

	// Type indicates the auth flow that produced the record.
	Type EventType `json:"type" db:"type"`

	// Subject is the masked identity the event concerns.
	Subject string `json:"subject,omitempty" db:"subject"`

	// Detail is a short human-readable description for internal ops.
	Detail string `json:"detail,omitempty" db:"detail"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeLoginSuccess   EventType = "login_success"
	EventTypeLoginFailure   EventType = "login_failure"
	EventTypeTokenRefresh   EventType = "token_refresh"
	EventTypeLogout         EventType = "logout"
	EventTypeRegistration   EventType = "registration"
	EventTypeAccountEnabled EventType = "account_enabled"
)

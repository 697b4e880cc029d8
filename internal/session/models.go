package session

import "time"

// RefreshToken is the persisted long-lived session record.
//
// Invariants:
// - At most one live row per user (UserEmail is the primary key).
// - Token is an opaque random value with no decodable payload; possession
//   of the exact stored string is the sole proof of validity.
// - Rotation replaces Token in place and extends ExpiresAt; the previous
//   value is invalid the instant rotation commits.
type RefreshToken struct {
	Token     string    `json:"-"`
	UserEmail string    `json:"user_email"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPair is what a successful login or refresh returns to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

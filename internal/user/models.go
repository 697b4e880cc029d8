package user

import "time"

// User is an account record. Email doubles as the token subject, so it is
// unique and immutable once created. PasswordHash is a bcrypt hash; the
// plaintext never leaves the transport layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

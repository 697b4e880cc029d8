package finance

import "time"

// Amounts are stored in minor units (cents); floats never touch money.

type Income struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	AmountMinor int64     `json:"amount_minor"`
	Source      string    `json:"source"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Expense struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	AmountMinor int64     `json:"amount_minor"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Investment struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	AmountMinor int64     `json:"amount_minor"`
	Type        string    `json:"type"`
	ReturnRate  float64   `json:"return_rate"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

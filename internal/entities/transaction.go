package entities

import "time"

type TransactionType string

const (
	TransactionIn  TransactionType = "IN"
	TransactionOut TransactionType = "OUT"
)

// Transaction is a single income or expense entry. Amounts are minor units.
type Transaction struct {
	ID          int64
	UserID      int64
	Type        TransactionType
	Title       string
	AmountCents int64
	CategoryID  *int64     // Nil when uncategorized or the category was deleted
	OccurredAt  time.Time  // Calendar date, midnight UTC
	DueDate     *time.Time // Calendar date
	PaidAt      *time.Time
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction carries the caller-supplied fields of a transaction insert.
type NewTransaction struct {
	UserID      int64
	Type        TransactionType
	Title       string
	AmountCents int64
	CategoryID  *int64
	OccurredAt  time.Time
	DueDate     *time.Time
	PaidAt      *time.Time
	Notes       *string
}

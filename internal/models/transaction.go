package models

import (
	"fmt"
	"strings"
	"time"

	"fintrack-api/internal/entities"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateTransactionRequest represents the request body for a new transaction.
// Amounts are integer minor units.
type CreateTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=IN OUT"`
	Title       string  `json:"title" binding:"required"`
	AmountCents int64   `json:"amount_cents" binding:"required,gt=0"`
	CategoryID  *int64  `json:"category_id" binding:"omitempty,gt=0"`
	OccurredAt  string  `json:"occurred_at" binding:"required,datetime=2006-01-02"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	PaidAt      *string `json:"paid_at" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
}

func (r *CreateTransactionRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.DueDate = trimOptional(r.DueDate)
	r.PaidAt = trimOptional(r.PaidAt)
	r.Notes = trimOptional(r.Notes)
}

// ToEntity converts a validated request into an insert for the user.
func (r *CreateTransactionRequest) ToEntity(userID int64) (entities.NewTransaction, error) {
	occurredAt, err := time.Parse(DateLayout, r.OccurredAt)
	if err != nil {
		return entities.NewTransaction{}, fmt.Errorf("occurred_at: %w", err)
	}

	tx := entities.NewTransaction{
		UserID:      userID,
		Type:        entities.TransactionType(r.Type),
		Title:       r.Title,
		AmountCents: r.AmountCents,
		CategoryID:  r.CategoryID,
		OccurredAt:  occurredAt,
		Notes:       r.Notes,
	}

	if r.DueDate != nil {
		due, err := time.Parse(DateLayout, *r.DueDate)
		if err != nil {
			return entities.NewTransaction{}, fmt.Errorf("due_date: %w", err)
		}
		tx.DueDate = &due
	}
	if r.PaidAt != nil {
		paid, err := time.Parse(time.RFC3339, *r.PaidAt)
		if err != nil {
			return entities.NewTransaction{}, fmt.Errorf("paid_at: %w", err)
		}
		paid = paid.UTC()
		tx.PaidAt = &paid
	}

	return tx, nil
}

type TransactionResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	AmountCents int64      `json:"amount_cents"`
	CategoryID  *int64     `json:"category_id"`
	OccurredAt  string     `json:"occurred_at"`
	DueDate     *string    `json:"due_date"`
	PaidAt      *time.Time `json:"paid_at"`
	Notes       *string    `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTransactionResponse(t *entities.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        string(t.Type),
		Title:       t.Title,
		AmountCents: t.AmountCents,
		CategoryID:  t.CategoryID,
		OccurredAt:  t.OccurredAt.Format(DateLayout),
		PaidAt:      t.PaidAt,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(DateLayout)
		resp.DueDate = &due
	}
	return resp
}

type TransactionEnvelope struct {
	Transaction TransactionResponse `json:"transaction"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

func NewTransactionListResponse(transactions []*entities.Transaction) TransactionListResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, NewTransactionResponse(t))
	}
	return TransactionListResponse{Transactions: out}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

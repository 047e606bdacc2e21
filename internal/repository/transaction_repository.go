package repository

import (
	"context"
	"database/sql"
	"time"

	"fintrack-api/internal/entities"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=transaction_repository.go -destination=mocks/transaction_repository.go -package=mocks

// TransactionRepository defines the interface for transaction database
// operations. Every method is scoped to the owning user.
type TransactionRepository interface {
	Create(ctx context.Context, tx entities.NewTransaction) (*entities.Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Transaction, error)
	Delete(ctx context.Context, userID, id int64) error
}

type transactionRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB, timeout time.Duration) TransactionRepository {
	return &transactionRepository{db: db, timeout: timeout}
}

const transactionColumns = `id, user_id, type, title, amount_cents, category_id, occurred_at, due_date, paid_at, notes, created_at, updated_at`

// Create inserts a transaction in one statement. When CategoryID is set the
// row is only written if that category belongs to the same user; otherwise
// ErrNotFound is returned. A category deleted concurrently surfaces as
// ErrForeignKey.
func (r *transactionRepository) Create(ctx context.Context, tx entities.NewTransaction) (*entities.Transaction, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO transactions (user_id, type, title, amount_cents, category_id, occurred_at, due_date, paid_at, notes)
		SELECT $1::bigint, $2::text, $3::text, $4::bigint, $5::bigint, $6::date, $7::date, $8::timestamptz, $9::text
		WHERE $5::bigint IS NULL
		   OR EXISTS (SELECT 1 FROM categories WHERE id = $5::bigint AND user_id = $1::bigint)
		RETURNING ` + transactionColumns

	var dueDate *string
	if tx.DueDate != nil {
		s := tx.DueDate.Format(dateLayout)
		dueDate = &s
	}

	row := r.db.QueryRowContext(ctx, query,
		tx.UserID,
		string(tx.Type),
		tx.Title,
		tx.AmountCents,
		tx.CategoryID,
		tx.OccurredAt.Format(dateLayout),
		dueDate,
		tx.PaidAt,
		tx.Notes,
	)

	created, err := scanTransaction(row)
	if err != nil {
		return nil, translateError("create transaction", err)
	}
	return created, nil
}

// ListByUser returns the user's transactions, newest occurrence first with
// ties broken by id descending.
func (r *transactionRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Transaction, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY occurred_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translateError("list transactions", err)
	}
	defer rows.Close()

	transactions := make([]*entities.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, translateError("scan transaction", err)
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, translateError("iterate transactions", err)
	}

	return transactions, nil
}

// Delete removes a transaction the user owns
func (r *transactionRepository) Delete(ctx context.Context, userID, id int64) error {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translateError("delete transaction", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return translateError("get rows affected", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*entities.Transaction, error) {
	var (
		tx     entities.Transaction
		txType string
	)
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&txType,
		&tx.Title,
		&tx.AmountCents,
		&tx.CategoryID,
		&tx.OccurredAt,
		&tx.DueDate,
		&tx.PaidAt,
		&tx.Notes,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	tx.Type = entities.TransactionType(txType)
	return &tx, nil
}

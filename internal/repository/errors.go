package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

var (
	// ErrNotFound means no row matched the id and owner.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrForeignKey means a referenced row does not exist.
	ErrForeignKey = errors.New("referenced record does not exist")
)

// PostgreSQL SQLSTATE codes
const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

// DefaultQueryTimeout applies when a repository is built with a zero timeout.
const DefaultQueryTimeout = 5 * time.Second

// translateError maps driver errors onto the repository sentinels and wraps
// everything else with the operation name.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrForeignKey)
		}
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

// queryContext bounds a single statement by the repository timeout.
func queryContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

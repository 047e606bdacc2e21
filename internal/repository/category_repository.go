package repository

import (
	"context"
	"database/sql"
	"time"

	"fintrack-api/internal/entities"
)

//go:generate mockgen -source=category_repository.go -destination=mocks/category_repository.go -package=mocks

// CategoryRepository defines the interface for category database operations.
// Every method is scoped to the owning user.
type CategoryRepository interface {
	Create(ctx context.Context, userID int64, name string) (*entities.Category, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Category, error)
	Delete(ctx context.Context, userID, id int64) error
}

type categoryRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB, timeout time.Duration) CategoryRepository {
	return &categoryRepository{db: db, timeout: timeout}
}

// Create inserts a category. A name the user already has returns ErrDuplicate.
func (r *categoryRepository) Create(ctx context.Context, userID int64, name string) (*entities.Category, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO categories (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at
	`

	var category entities.Category
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, translateError("create category", err)
	}

	return &category, nil
}

// ListByUser returns the user's categories ordered by name
func (r *categoryRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Category, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, user_id, name, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translateError("list categories", err)
	}
	defer rows.Close()

	categories := make([]*entities.Category, 0)
	for rows.Next() {
		var category entities.Category
		if err := rows.Scan(
			&category.ID,
			&category.UserID,
			&category.Name,
			&category.CreatedAt,
		); err != nil {
			return nil, translateError("scan category", err)
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, translateError("iterate categories", err)
	}

	return categories, nil
}

// Delete removes a category the user owns. Transactions pointing at it keep
// existing with a NULL category_id (ON DELETE SET NULL).
func (r *categoryRepository) Delete(ctx context.Context, userID, id int64) error {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translateError("delete category", err)
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

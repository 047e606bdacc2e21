package repository

import (
	"context"
	"database/sql"
	"time"

	"fintrack-api/internal/entities"
)

//go:generate mockgen -source=user_repository.go -destination=mocks/user_repository.go -package=mocks

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
}

type userRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, timeout time.Duration) UserRepository {
	return &userRepository{db: db, timeout: timeout}
}

// Create inserts a new user. A taken email returns ErrDuplicate.
func (r *userRepository) Create(ctx context.Context, name, email, passwordHash string) (*entities.User, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, name, email, passwordHash).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, translateError("create user", err)
	}

	return &user, nil
}

// FindByEmail finds a user by exact email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, translateError("find user", err)
	}

	return &user, nil
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1
		LIMIT 1
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, translateError("find user", err)
	}

	return &user, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"fintrack-api/internal/entities"
	"fintrack-api/internal/repository"
)

// TransactionService defines the interface for transaction business logic
type TransactionService interface {
	List(ctx context.Context, userID int64) ([]*entities.Transaction, error)
	Create(ctx context.Context, tx entities.NewTransaction) (*entities.Transaction, error)
	Delete(ctx context.Context, userID, id int64) error
}

type transactionService struct {
	repo repository.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo repository.TransactionRepository) TransactionService {
	return &transactionService{repo: repo}
}

// List returns the user's transactions, most recent first
func (s *transactionService) List(ctx context.Context, userID int64) ([]*entities.Transaction, error) {
	transactions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// Create records a transaction. A category_id the user does not own yields
// ErrInvalidCategory.
func (s *transactionService) Create(ctx context.Context, tx entities.NewTransaction) (*entities.Transaction, error) {
	created, err := s.repo.Create(ctx, tx)
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrForeignKey) {
		return nil, ErrInvalidCategory
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return created, nil
}

// Delete removes a transaction the user owns
func (s *transactionService) Delete(ctx context.Context, userID, id int64) error {
	err := s.repo.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTransactionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fintrack-api/internal/cache"
	"fintrack-api/internal/entities"
	"fintrack-api/internal/repository"
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	List(ctx context.Context, userID int64) ([]*entities.Category, error)
	Create(ctx context.Context, userID int64, name string) (*entities.Category, error)
	Delete(ctx context.Context, userID, id int64) error
}

type categoryService struct {
	repo     repository.CategoryRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewCategoryService creates a new category service. cacheClient may be nil,
// in which case every list goes to the store.
func NewCategoryService(repo repository.CategoryRepository, cacheClient cache.Cache, cacheTTL time.Duration) CategoryService {
	return &categoryService{
		repo:     repo,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
	}
}

// List returns the user's categories ordered by name. The cached copy is
// keyed by the user's generation as read before the store query, so a list
// that races a create or delete is written under a generation nobody reads.
func (s *categoryService) List(ctx context.Context, userID int64) ([]*entities.Category, error) {
	key, cached := s.listKey(ctx, userID)

	if cached {
		var categories []*entities.Category
		err := s.cache.GetJSON(ctx, key, &categories)
		if err == nil {
			return categories, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("Warning: category cache read failed for user %d: %v", userID, err)
		}
	}

	categories, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if cached {
		if err := s.cache.SetJSON(ctx, key, categories, s.cacheTTL); err != nil {
			log.Printf("Warning: category cache write failed for user %d: %v", userID, err)
		}
	}

	return categories, nil
}

// listKey resolves the current list key. It reports false when there is no
// cache or the generation cannot be read.
func (s *categoryService) listKey(ctx context.Context, userID int64) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	generation, err := s.cache.GetInt(ctx, cache.CategoriesGenerationKey(userID))
	if err != nil {
		log.Printf("Warning: category cache generation read failed for user %d: %v", userID, err)
		return "", false
	}
	return cache.CategoriesKey(userID, generation), true
}

// Create adds a category for the user
func (s *categoryService) Create(ctx context.Context, userID int64, name string) (*entities.Category, error) {
	category, err := s.repo.Create(ctx, userID, name)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrCategoryExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidate(ctx, userID)
	return category, nil
}

// Delete removes a category the user owns. Another user's id is reported as
// not found.
func (s *categoryService) Delete(ctx context.Context, userID, id int64) error {
	err := s.repo.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidate(ctx, userID)
	return nil
}

// invalidate bumps the user's generation and drops the list cached under the
// previous one.
func (s *categoryService) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	generation, err := s.cache.Incr(ctx, cache.CategoriesGenerationKey(userID))
	if err != nil {
		log.Printf("Warning: category cache invalidation failed for user %d: %v", userID, err)
		return
	}
	if err := s.cache.Delete(ctx, cache.CategoriesKey(userID, generation-1)); err != nil {
		log.Printf("Warning: category cache cleanup failed for user %d: %v", userID, err)
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"fintrack-api/internal/cache"
	cachemocks "fintrack-api/internal/cache/mocks"
	"fintrack-api/internal/entities"
	"fintrack-api/internal/repository"
	"fintrack-api/internal/repository/mocks"
)

func TestCategoryListWithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCategoryRepository(ctrl)

	want := []*entities.Category{{ID: 1, UserID: 5, Name: "Food"}}
	repo.EXPECT().ListByUser(gomock.Any(), int64(5)).Return(want, nil)

	got, err := NewCategoryService(repo, nil, time.Minute).List(context.Background(), 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Food" {
		t.Fatalf("categories = %+v", got)
	}
}

func TestCategoryListFillsCacheOnMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCategoryRepository(ctrl)
	c := cachemocks.NewMockCache(ctrl)

	rows := []*entities.Category{{ID: 1, UserID: 5, Name: "Food"}}
	gomock.InOrder(
		c.EXPECT().GetInt(gomock.Any(), cache.CategoriesGenerationKey(5)).Return(int64(2), nil),
		c.EXPECT().GetJSON(gomock.Any(), cache.CategoriesKey(5, 2), gomock.Any()).Return(cache.ErrMiss),
		repo.EXPECT().ListByUser(gomock.Any(), int64(5)).Return(rows, nil),
		c.EXPECT().SetJSON(gomock.Any(), cache.CategoriesKey(5, 2), rows, time.Minute).Return(nil),
	)

	if _, err := NewCategoryService(repo, c, time.Minute).List(context.Background(), 5); err != nil {
		t.Fatalf("list: %v", err)
	}
}

func TestCategoryListServesCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCategoryRepository(ctrl)
	c := cachemocks.NewMockCache(ctrl)

	c.EXPECT().GetInt(gomock.Any(), cache.CategoriesGenerationKey(5)).Return(int64(0), nil)
	c.EXPECT().GetJSON(gomock.Any(), cache.CategoriesKey(5, 0), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dest any) error {
			*dest.(*[]*entities.Category) = []*entities.Category{{ID: 2, UserID: 5, Name: "Rent"}}
			return nil
		})

	got, err := NewCategoryService(repo, c, time.Minute).List(context.Background(), 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("categories = %+v", got)
	}
}

func TestCategoryListFallsBackWhenCacheFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCategoryRepository(ctrl)
	c := cachemocks.NewMockCache(ctrl)

	c.EXPECT().GetInt(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	c.EXPECT().GetJSON(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	repo.EXPECT().ListByUser(gomock.Any(), int64(5)).Return([]*entities.Category{}, nil)
	c.EXPECT().SetJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	got, err := NewCategoryService(repo, c, time.Minute).List(context.Background(), 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("categories = %+v, want empty", got)
	}
}

func TestCategoryListSkipsCacheWithoutGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCategoryRepository(ctrl)
	c := cachemocks.NewMockCache(ctrl)

	c.EXPECT().GetInt(gomock.Any(), cache.CategoriesGenerationKey(5)).Return(int64(0), errors.New("redis down"))
	repo.EXPECT().ListByUser(gomock.Any(), int64(5)).Return([]*entities.Category{{ID: 1, UserID: 5, Name: "Food"}}, nil)

	got, err := NewCategoryService(repo, c, time.Minute).List(context.Background(), 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("categories = %+v", got)
	}
}

func TestCategoryCreateInvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCategoryRepository(ctrl)
	c := cachemocks.NewMockCache(ctrl)

	repo.EXPECT().Create(gomock.Any(), int64(5), "Food").Return(&entities.Category{ID: 1, UserID: 5, Name: "Food"}, nil)
	gomock.InOrder(
		c.EXPECT().Incr(gomock.Any(), cache.CategoriesGenerationKey(5)).Return(int64(4), nil),
		c.EXPECT().Delete(gomock.Any(), cache.CategoriesKey(5, 3)).Return(nil),
	)

	if _, err := NewCategoryService(repo, c, time.Minute).Create(context.Background(), 5, "Food"); err != nil {
		t.Fatalf("create: %v", err)
	}
}

// memCache is a goroutine-safe in-memory Cache.
type memCache struct {
	mu       sync.Mutex
	values   map[string][]byte
	counters map[string]int64
}

func newMemCache() *memCache {
	return &memCache{values: map[string][]byte{}, counters: map[string]int64{}}
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *memCache) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]++
	return m.counters[key], nil
}

func (m *memCache) GetInt(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[key], nil
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = data
	return nil
}

func (m *memCache) GetJSON(_ context.Context, key string, dest any) error {
	m.mu.Lock()
	data, ok := m.values[key]
	m.mu.Unlock()
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memCache) Close() error { return nil }

func TestCategoryListRacingCreateDoesNotCacheStaleList(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCategoryRepository(ctrl)
	svc := NewCategoryService(repo, newMemCache(), time.Minute)

	food := &entities.Category{ID: 1, UserID: 5, Name: "Food"}
	entered := make(chan struct{})
	release := make(chan struct{})

	gomock.InOrder(
		repo.EXPECT().ListByUser(gomock.Any(), int64(5)).
			DoAndReturn(func(context.Context, int64) ([]*entities.Category, error) {
				close(entered)
				<-release
				return []*entities.Category{}, nil
			}),
		repo.EXPECT().ListByUser(gomock.Any(), int64(5)).Return([]*entities.Category{food}, nil),
	)
	repo.EXPECT().Create(gomock.Any(), int64(5), "Food").Return(food, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.List(context.Background(), 5)
		done <- err
	}()

	<-entered
	if _, err := svc.Create(context.Background(), 5, "Food"); err != nil {
		t.Fatalf("create: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("slow list: %v", err)
	}

	// The second read goes to the store, the third is served from cache.
	for i := 0; i < 2; i++ {
		got, err := svc.List(context.Background(), 5)
		if err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
		if len(got) != 1 || got[0].Name != "Food" {
			t.Fatalf("list %d after create = %+v, want [Food]", i, got)
		}
	}
}

func TestCategoryDeleteInvalidatesCachedList(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCategoryRepository(ctrl)
	svc := NewCategoryService(repo, newMemCache(), time.Minute)

	gomock.InOrder(
		repo.EXPECT().ListByUser(gomock.Any(), int64(5)).Return([]*entities.Category{{ID: 1, UserID: 5, Name: "Food"}}, nil),
		repo.EXPECT().Delete(gomock.Any(), int64(5), int64(1)).Return(nil),
		repo.EXPECT().ListByUser(gomock.Any(), int64(5)).Return([]*entities.Category{}, nil),
	)

	if _, err := svc.List(context.Background(), 5); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := svc.Delete(context.Background(), 5, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := svc.List(context.Background(), 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("categories after delete = %+v, want empty", got)
	}
}

func TestCategoryCreateDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCategoryRepository(ctrl)

	repo.EXPECT().Create(gomock.Any(), int64(5), "Food").Return(nil, repository.ErrDuplicate)

	_, err := NewCategoryService(repo, nil, time.Minute).Create(context.Background(), 5, "Food")
	if !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestCategoryDeleteNotOwned(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCategoryRepository(ctrl)
	c := cachemocks.NewMockCache(ctrl)

	repo.EXPECT().Delete(gomock.Any(), int64(5), int64(999999)).Return(repository.ErrNotFound)

	err := NewCategoryService(repo, c, time.Minute).Delete(context.Background(), 5, 999999)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

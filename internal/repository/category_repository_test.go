package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

var categoryCols = []string{"id", "user_id", "name", "created_at"}

func TestCategoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db, time.Second)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories (user_id, name) VALUES ($1, $2) RETURNING id, user_id, name, created_at`)).
		WithArgs(int64(5), "Food").
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(int64(11), int64(5), "Food", now))

	got, err := repo.Create(context.Background(), 5, "Food")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != 11 || got.UserID != 5 || got.Name != "Food" || !got.CreatedAt.Equal(now) {
		t.Fatalf("category = %+v", got)
	}
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db, time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories`)).
		WithArgs(int64(5), "Food").
		WillReturnError(&pq.Error{Code: "23505"})

	if _, err := repo.Create(context.Background(), 5, "Food"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCategoryListScopedToUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db, time.Second)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM categories WHERE user_id = $1 ORDER BY name ASC`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(categoryCols).
			AddRow(int64(2), int64(5), "Food", now).
			AddRow(int64(1), int64(5), "Rent", now))

	got, err := repo.ListByUser(context.Background(), 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Food" || got[1].Name != "Rent" {
		t.Fatalf("categories = %+v", got)
	}
}

func TestCategoryListEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db, time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM categories WHERE user_id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(categoryCols))

	got, err := repo.ListByUser(context.Background(), 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("categories = %#v, want empty slice", got)
	}
}

func TestCategoryDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     error
	}{
		{"owned", 1, nil},
		{"missing or foreign", 0, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewCategoryRepository(db, time.Second)

			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1 AND user_id = $2`)).
				WithArgs(int64(9), int64(5)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Delete(context.Background(), 5, 9)
			if !errors.Is(err, tt.want) {
				t.Fatalf("delete = %v, want %v", err, tt.want)
			}
		})
	}
}

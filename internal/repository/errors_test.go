package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, ErrDuplicate},
		{"wrapped unique violation", fmt.Errorf("exec: %w", &pq.Error{Code: "23505"}), ErrDuplicate},
		{"foreign key violation", &pq.Error{Code: "23503"}, ErrForeignKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError("op", tt.err)
			if !errors.Is(got, tt.want) {
				t.Fatalf("translateError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestTranslateErrorKeepsUnknownErrors(t *testing.T) {
	if got := translateError("op", nil); got != nil {
		t.Fatalf("translateError(nil) = %v, want nil", got)
	}

	checkViolation := &pq.Error{Code: "23514"}
	got := translateError("create transaction", checkViolation)
	for _, sentinel := range []error{ErrNotFound, ErrDuplicate, ErrForeignKey} {
		if errors.Is(got, sentinel) {
			t.Fatalf("check violation mapped to %v", sentinel)
		}
	}
	if !errors.Is(got, checkViolation) {
		t.Fatalf("expected original error to stay wrapped, got %v", got)
	}

	got = translateError("list categories", context.DeadlineExceeded)
	if !errors.Is(got, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error to stay wrapped, got %v", got)
	}
}

func TestQueryContextDefaultsTimeout(t *testing.T) {
	ctx, cancel := queryContext(context.Background(), 0)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > DefaultQueryTimeout {
		t.Fatalf("remaining = %v, want within %v", remaining, DefaultQueryTimeout)
	}
}

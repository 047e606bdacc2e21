package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidation()
}

func jsonContext(body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return c
}

func validationDetails(t *testing.T, err error) ValidationDetails {
	t.Helper()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	return validationErr.Details
}

func TestBindJSONReportsEveryBadField(t *testing.T) {
	var req models.CreateTransactionRequest
	err := bindJSON(jsonContext(`{"type":"BAD","title":"","amount_cents":"x","occurred_at":"nope"}`), &req)
	details := validationDetails(t, err)

	for _, field := range []string{"type", "title", "amount_cents", "occurred_at"} {
		if len(details.FieldErrors[field]) == 0 {
			t.Errorf("no error for %s: %+v", field, details.FieldErrors)
		}
	}
	if got := details.FieldErrors["amount_cents"]; len(got) != 1 || got[0] != "Expected integer" {
		t.Errorf("amount_cents errors = %v, want [Expected integer]", got)
	}
}

func TestBindJSONAcceptsIntegralFloats(t *testing.T) {
	tests := map[string]string{
		"trailing zero": `100.0`,
		"exponent":      `1e2`,
	}
	for name, amount := range tests {
		t.Run(name, func(t *testing.T) {
			var req models.CreateTransactionRequest
			body := `{"type":"IN","title":"Salary","amount_cents":` + amount + `,"category_id":3.0,"occurred_at":"2024-01-01"}`
			if err := bindJSON(jsonContext(body), &req); err != nil {
				t.Fatalf("bindJSON: %v", err)
			}
			if req.AmountCents != 100 {
				t.Fatalf("amount_cents = %d, want 100", req.AmountCents)
			}
			if req.CategoryID == nil || *req.CategoryID != 3 {
				t.Fatalf("category_id = %v, want 3", req.CategoryID)
			}
		})
	}
}

func TestBindJSONRejectsFractionalAndStringNumbers(t *testing.T) {
	var req models.CreateTransactionRequest
	err := bindJSON(jsonContext(`{"type":"IN","title":"x","amount_cents":10.5,"category_id":"4","occurred_at":"2024-01-01"}`), &req)
	details := validationDetails(t, err)

	for _, field := range []string{"amount_cents", "category_id"} {
		if got := details.FieldErrors[field]; len(got) != 1 || got[0] != "Expected integer" {
			t.Errorf("%s errors = %v, want [Expected integer]", field, got)
		}
	}
	if len(details.FieldErrors) != 2 {
		t.Errorf("unexpected field errors: %+v", details.FieldErrors)
	}
}

func TestBindJSONFormErrors(t *testing.T) {
	tests := map[string]string{
		"":           "Request body is required",
		`[1,2]`:      "Expected object",
		`{"email":`:  "Malformed JSON body",
		`"a string"`: "Expected object",
	}
	for body, want := range tests {
		var req models.LoginRequest
		details := validationDetails(t, bindJSON(jsonContext(body), &req))
		if len(details.FormErrors) != 1 || details.FormErrors[0] != want {
			t.Errorf("body %q: form errors = %v, want [%s]", body, details.FormErrors, want)
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"5", 5, true},
		{" 5", 5, true},
		{"1.0", 1, true},
		{"1e2", 100, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"1.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: tt.raw}}

		got, ok := parseID(c, "id")
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseID(%q) = %d, %v; want %d, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

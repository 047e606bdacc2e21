package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// normalizer is implemented by request bodies that trim their fields before
// validation.
type normalizer interface {
	Normalize()
}

// ValidationDetails lists problems with a request body, keyed by JSON field.
type ValidationDetails struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func (d *ValidationDetails) addField(field, msg string) {
	d.FieldErrors[field] = append(d.FieldErrors[field], msg)
}

// ValidationError carries the details of a rejected body.
type ValidationError struct {
	Details ValidationDetails
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v %v", e.Details.FormErrors, e.Details.FieldErrors)
}

var registerOnce sync.Once

// RegisterValidation makes validator errors report JSON field names.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON decodes the body field by field, trims it, then validates it.
// Every bad field is reported; a field with the wrong JSON type is not also
// reported by the struct rules.
func bindJSON(c *gin.Context, req normalizer) error {
	details := ValidationDetails{
		FormErrors:  []string{},
		FieldErrors: map[string][]string{},
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			details.FormErrors = append(details.FormErrors, "Expected object")
		case errors.Is(err, io.EOF):
			details.FormErrors = append(details.FormErrors, "Request body is required")
		default:
			details.FormErrors = append(details.FormErrors, "Malformed JSON body")
		}
		return &ValidationError{Details: details}
	}

	decodeFields(raw, req, &details)
	req.Normalize()

	if err := binding.Validator.ValidateStruct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			details.FormErrors = append(details.FormErrors, err.Error())
			return &ValidationError{Details: details}
		}
		for _, fe := range fieldErrs {
			if _, typed := details.FieldErrors[fe.Field()]; typed {
				continue
			}
			details.addField(fe.Field(), fieldMessage(fe))
		}
	}

	if len(details.FieldErrors) > 0 || len(details.FormErrors) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}

// decodeFields fills the exported fields of the struct req points to from
// raw, keyed by json tag. Unknown keys are ignored.
func decodeFields(raw map[string]json.RawMessage, req any, details *ValidationDetails) {
	v := reflect.ValueOf(req).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		value, ok := raw[name]
		if !ok {
			continue
		}
		if err := decodeField(value, v.Field(i)); err != nil {
			details.addField(name, "Expected "+describeKind(sf.Type))
		}
	}
}

// decodeField unmarshals one value. JSON numbers are untyped, so an integer
// field also accepts an integral float such as 100.0.
func decodeField(value json.RawMessage, field reflect.Value) error {
	err := json.Unmarshal(value, field.Addr().Interface())
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || !isInteger(field.Type()) {
		return err
	}

	n, ok := integralNumber(value)
	if !ok {
		return err
	}
	target := field
	if target.Kind() == reflect.Pointer {
		target.Set(reflect.New(target.Type().Elem()))
		target = target.Elem()
	}
	if target.OverflowInt(n) {
		return err
	}
	target.SetInt(n)
	return nil
}

const maxSafeInteger = 1<<53 - 1

func integralNumber(value json.RawMessage) (int64, bool) {
	var f float64
	if err := json.Unmarshal(value, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
		return 0, false
	}
	return int64(f), true
}

func isInteger(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "min":
		return fmt.Sprintf("Must contain at least %s character(s)", fe.Param())
	case "max":
		return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "oneof":
		return "Expected one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		if fe.Param() == "2006-01-02" {
			return "Invalid date, expected YYYY-MM-DD"
		}
		return "Invalid timestamp, expected RFC 3339"
	default:
		return "Invalid value"
	}
}

func describeKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}

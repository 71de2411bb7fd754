// Package validation implements the record schemas. Each schema takes an
// untyped input record and returns either a normalized, typed record or a
// set of field-level error messages. Schemas never panic on malformed
// input; every violation becomes a field error.
package validation

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// FieldErrors maps a field name to its violation messages.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

// First returns the first message recorded for field, or "".
func (fe FieldErrors) First(field string) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their json names so errors line up with payloads.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("transaction_type", func(fl validator.FieldLevel) bool {
		return models.TransactionType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("expense_category", func(fl validator.FieldLevel) bool {
		return models.ValidExpenseCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("range_preset", func(fl validator.FieldLevel) bool {
		return models.RangePreset(fl.Field().String()).Valid()
	})
	return v
}

// collect runs struct validation and folds any violations into errs.
func collect(record interface{}, errs FieldErrors) {
	err := validate.Struct(record)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.add("_", "invalid record")
		return
	}
	for _, fe := range verrs {
		errs.add(fe.Field(), tagMessage(fe))
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "transaction_type":
		return "must be one of Expense, Income, Saving, Investment"
	case "expense_category":
		return "must be one of Housing, Transport, Health, Food, Education, Other"
	case "range_preset":
		return "must be one of last24hours, last7days, last30days, last12months"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "is invalid"
}

// stringField reads input[key] as a string. Absent keys, nil values, and
// empty strings all read as absent.
func stringField(input map[string]any, key string) (value string, present bool, wrongType bool) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return "", false, false
	}
	s, ok := raw.(string)
	if !ok {
		return "", true, true
	}
	return s, s != "", false
}

// parseAmount accepts the numeric shapes a JSON or form payload can carry.
func parseAmount(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		return d, err == nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case decimal.Decimal:
		return v, true
	}
	return decimal.Decimal{}, false
}

// parseDate accepts a calendar date (YYYY-MM-DD), an RFC3339 timestamp, or
// an already-parsed time.
func parseDate(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

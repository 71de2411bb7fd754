package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// TransactionRecord is the normalized shape of a validated transaction
// input. Category is non-nil if and only if Type is Expense.
type TransactionRecord struct {
	Type        models.TransactionType `json:"type" validate:"required,transaction_type"`
	Category    *string                `json:"category,omitempty" validate:"omitempty,expense_category"`
	Amount      decimal.Decimal        `json:"amount" validate:"-"`
	CreatedAt   time.Time              `json:"created_at" validate:"required"`
	Description string                 `json:"description" validate:"max=500"`
}

// Transaction validates an untyped transaction input. On success it returns
// the normalized record and a nil error map; on failure it returns nil and
// the per-field violations.
func Transaction(input map[string]any) (*TransactionRecord, FieldErrors) {
	errs := FieldErrors{}
	record := &TransactionRecord{}

	typeStr, _, badType := stringField(input, "type")
	if badType {
		errs.add("type", "must be a string")
	}
	record.Type = models.TransactionType(typeStr)

	category, hasCategory, badCategory := stringField(input, "category")
	if badCategory {
		errs.add("category", "must be a string")
		hasCategory = false
	}
	if hasCategory {
		record.Category = &category
	}

	if raw, ok := input["amount"]; !ok || raw == nil || raw == "" {
		errs.add("amount", "is required")
	} else if amount, ok := parseAmount(raw); ok {
		record.Amount = amount
	} else {
		errs.add("amount", "must be a number")
	}

	if raw, ok := input["created_at"]; !ok || raw == nil || raw == "" {
		errs.add("created_at", "is required")
	} else if date, ok := parseDate(raw); ok {
		record.CreatedAt = date
	} else {
		errs.add("created_at", "must be a valid date")
	}

	description, _, badDescription := stringField(input, "description")
	if badDescription {
		errs.add("description", "must be a string")
	}
	record.Description = description

	collect(record, errs)

	// Category is tied to the type: required for expenses, forbidden
	// otherwise. Only enforced once the type itself is valid.
	if record.Type.Valid() {
		if record.Type == models.TransactionTypeExpense {
			if record.Category == nil {
				errs.add("category", "is required for expenses")
			}
		} else if record.Category != nil {
			errs.add("category", "must be empty unless type is Expense")
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return record, nil
}

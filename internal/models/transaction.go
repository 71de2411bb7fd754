package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/uuid"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeExpense    TransactionType = "Expense"
	TransactionTypeIncome     TransactionType = "Income"
	TransactionTypeSaving     TransactionType = "Saving"
	TransactionTypeInvestment TransactionType = "Investment"
)

// TransactionTypes lists all types in display order. The dashboard renders
// one trend widget per entry.
var TransactionTypes = []TransactionType{
	TransactionTypeExpense,
	TransactionTypeIncome,
	TransactionTypeSaving,
	TransactionTypeInvestment,
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeExpense, TransactionTypeIncome, TransactionTypeSaving, TransactionTypeInvestment:
		return true
	}
	return false
}

// ExpenseCategories lists the categories assignable to Expense transactions.
// Non-Expense transactions carry no category.
var ExpenseCategories = []string{
	"Housing",
	"Transport",
	"Health",
	"Food",
	"Education",
	"Other",
}

// ValidExpenseCategory reports whether s is a known expense category.
func ValidExpenseCategory(s string) bool {
	for _, c := range ExpenseCategories {
		if c == s {
			return true
		}
	}
	return false
}

// Transaction represents a financial record in the system. CreatedAt is the
// calendar date of the transaction, supplied by the user at creation.
// Category is set if and only if Type is Expense.
type Transaction struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Category    *string         `json:"category,omitempty"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	return nil
}

package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique email and the default view.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:       email,
		FullName:    fmt.Sprintf("Test User %d", nextID()),
		DefaultView: models.RangeDefault,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction dated now for the user.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, userID, txType, amount, time.Now())
}

// CreateTestTransactionOn creates a transaction with the given date. Expense
// transactions get the "Other" category; other types carry none.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount string, date time.Time) *models.Transaction {
	t.Helper()

	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}

	tx := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      value,
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		CreatedAt:   date,
	}
	if txType == models.TransactionTypeExpense {
		category := "Other"
		tx.Category = &category
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestAvatar stores an avatar blob under the given name.
func CreateTestAvatar(t *testing.T, db *gorm.DB, name string) *models.Avatar {
	t.Helper()

	avatar := &models.Avatar{
		Name:        name,
		ContentType: "image/png",
		Content:     []byte{0x89, 0x50, 0x4e, 0x47},
	}
	if err := db.Create(avatar).Error; err != nil {
		t.Fatalf("failed to create test avatar: %v", err)
	}
	return avatar
}

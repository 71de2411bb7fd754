package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// TransactionGateway is the remote-store surface for transaction rows.
// Implemented by store.Gateway.
type TransactionGateway interface {
	InsertTransaction(tx *models.Transaction) error
	UpdateTransaction(userID, id string, fields map[string]any) error
	DeleteTransaction(userID, id string) error
	GetTransaction(userID, id string) (*models.Transaction, error)
	FetchTransactions(userID string, preset models.RangePreset, page pagination.PageRequest) ([]models.Transaction, error)
}

// TrendGateway is the remote-store surface for trend aggregation.
type TrendGateway interface {
	SumAmounts(userID string, transactionType models.TransactionType, from, to time.Time) (decimal.Decimal, error)
}

// IdentityGateway is the remote-store surface for identity records.
type IdentityGateway interface {
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUserAttributes(id string, attrs map[string]any) error
}

// BlobGateway is the remote-store surface for avatar blobs.
type BlobGateway interface {
	UploadAvatar(avatar *models.Avatar) error
	RemoveAvatar(name string) error
	GetAvatar(name string) (*models.Avatar, error)
}

// ViewInvalidator marks a user's cached dashboard data stale so the next
// read re-fetches. Called exactly once per confirmed mutation.
type ViewInvalidator interface {
	Invalidate(userID string)
}

// CodeSender delivers a sign-in code to the user. Transport mechanics are
// out of scope; the default implementation logs the code.
type CodeSender interface {
	Send(email, code string) error
}

// TransactionServicer defines the contract for the transaction actions.
// Inputs are untyped records; each action validates via the schemas before
// touching the store.
type TransactionServicer interface {
	Create(userID string, input map[string]any) (*models.Transaction, error)
	Update(userID, transactionID string, input map[string]any) (*models.Transaction, error)
	Delete(userID, transactionID string) error
	Get(userID, transactionID string) (*models.Transaction, error)
	List(userID string, preset models.RangePreset, page pagination.PageRequest) ([]models.Transaction, error)
}

// TrendWidget is one per-type aggregate over the active range. Error is set
// when this widget's computation failed; siblings are unaffected.
type TrendWidget struct {
	Type           models.TransactionType `json:"type"`
	Amount         decimal.Decimal        `json:"amount"`
	PreviousAmount decimal.Decimal        `json:"previous_amount"`
	Error          string                 `json:"error,omitempty"`
}

// DashboardSummary is the composed dashboard view for one range.
type DashboardSummary struct {
	Range        models.RangePreset   `json:"range"`
	Trends       []TrendWidget        `json:"trends"`
	Transactions []models.Transaction `json:"transactions"`
}

// DashboardServicer defines the contract for the dashboard composition.
// It doubles as the ViewInvalidator the transaction actions signal.
type DashboardServicer interface {
	Summary(userID string, preset models.RangePreset, page pagination.PageRequest) (*DashboardSummary, error)
	Invalidate(userID string)
}

// UserServicer defines the contract for identity, settings, and avatar
// operations.
type UserServicer interface {
	RequestCode(email string) error
	VerifyCode(email, code string) (*models.User, error)
	SignOut(userID string) error
	GetUserByID(id string) (*models.User, error)
	UpdateSettings(userID string, input map[string]any) (*models.User, error)
	ReplaceAvatar(userID, filename, contentType string, data []byte) (string, error)
	GetAvatar(name string) (*models.Avatar, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

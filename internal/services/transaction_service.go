package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/validation"
)

// transactionService implements the transaction actions: validate, write,
// then invalidate the dashboard view.
type transactionService struct {
	gateway TransactionGateway
	views   ViewInvalidator
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(gateway TransactionGateway, views ViewInvalidator) TransactionServicer {
	return &transactionService{gateway: gateway, views: views}
}

// Create validates the input and inserts a new transaction for the user.
// The owning user comes from the authenticated session, never the input.
func (s *transactionService) Create(userID string, input map[string]any) (*models.Transaction, error) {
	record, fieldErrs := validation.Transaction(input)
	if fieldErrs != nil {
		return nil, apperrors.WithFields(apperrors.ErrInvalidData, fieldErrs)
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        record.Type,
		Category:    record.Category,
		Amount:      record.Amount,
		Description: record.Description,
		CreatedAt:   record.CreatedAt,
	}

	if err := s.gateway.InsertTransaction(transaction); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCreateFailed, err)
	}

	// Invalidate only after the confirmed write.
	s.views.Invalidate(userID)
	return transaction, nil
}

// Update validates the input and applies it to the matching record with
// full-replacement semantics.
func (s *transactionService) Update(userID, transactionID string, input map[string]any) (*models.Transaction, error) {
	record, fieldErrs := validation.Transaction(input)
	if fieldErrs != nil {
		return nil, apperrors.WithFields(apperrors.ErrInvalidData, fieldErrs)
	}

	fields := map[string]any{
		"type":        record.Type,
		"category":    record.Category,
		"amount":      record.Amount,
		"description": record.Description,
		"created_at":  record.CreatedAt,
	}

	if err := s.gateway.UpdateTransaction(userID, transactionID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrUpdateFailed, err)
	}

	s.views.Invalidate(userID)

	updated, err := s.gateway.GetTransaction(userID, transactionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return updated, nil
}

// Delete hard-deletes the matching record.
func (s *transactionService) Delete(userID, transactionID string) error {
	if err := s.gateway.DeleteTransaction(userID, transactionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTransactionNotFound
		}
		return apperrors.WithMessage(
			apperrors.Wrap(apperrors.ErrDeleteFailed, err),
			"Failed to delete transaction "+transactionID,
		)
	}

	s.views.Invalidate(userID)
	return nil
}

// Get fetches a single transaction for the user.
func (s *transactionService) Get(userID, transactionID string) (*models.Transaction, error) {
	transaction, err := s.gateway.GetTransaction(userID, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrFetchFailed, err)
	}
	return transaction, nil
}

// List returns one page of the user's transactions in the preset's window,
// ordered newest first by the store.
func (s *transactionService) List(userID string, preset models.RangePreset, page pagination.PageRequest) ([]models.Transaction, error) {
	if !preset.Valid() {
		preset = models.RangeDefault
	}
	page.Defaults()

	transactions, err := s.gateway.FetchTransactions(userID, preset, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchFailed, err)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

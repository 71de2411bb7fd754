package store

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// InsertTransaction inserts a new transaction row.
func (g *Gateway) InsertTransaction(tx *models.Transaction) error {
	return g.db.Create(tx).Error
}

// UpdateTransaction applies a full-replacement field set to the row
// matching id for the given user. Returns gorm.ErrRecordNotFound when no
// such row exists (including rows owned by other users).
func (g *Gateway) UpdateTransaction(userID, id string, fields map[string]any) error {
	result := g.db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTransaction hard-deletes the row matching id for the given user.
func (g *Gateway) DeleteTransaction(userID, id string) error {
	result := g.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Transaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetTransaction fetches a single transaction for the given user.
func (g *Gateway) GetTransaction(userID, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := g.db.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// FetchTransactions returns one page of the user's transactions inside the
// preset's window, newest first. Offset and limit are applied verbatim.
func (g *Gateway) FetchTransactions(userID string, preset models.RangePreset, page pagination.PageRequest) ([]models.Transaction, error) {
	from, to := preset.Window(time.Now())

	var transactions []models.Transaction
	err := g.db.
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// SumAmounts totals the user's transactions of one type inside [from, to).
func (g *Gateway) SumAmounts(userID string, transactionType models.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := g.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND created_at >= ? AND created_at < ?", userID, transactionType, from, to).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Decimal{}, err
	}
	return total, nil
}

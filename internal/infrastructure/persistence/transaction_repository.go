package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/infrastructure/persistence/models"
)

// TransactionRepository implements finance.TransactionRepository with GORM
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new channel transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// FindRange returns non-excluded transactions for a brand whose timestamp
// falls inside the date range
func (r *TransactionRepository) FindRange(ctx context.Context, brand shared.Brand, dateRange finance.DateRange) ([]finance.ChannelTransaction, error) {
	var rows []models.ChannelTransactionModel
	if err := r.db.WithContext(ctx).
		Where("brand = ? AND excluded = ? AND occurred_at >= ? AND occurred_at < ?",
			brand.Normalize().String(), false, dateRange.From, dateRange.To.AddDate(0, 0, 1)).
		Order("occurred_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return transactionsToDomain(rows), nil
}

// FindUnreconciledWholesale returns wholesale transactions not yet linked
// to an invoice
func (r *TransactionRepository) FindUnreconciledWholesale(ctx context.Context, brand shared.Brand) ([]finance.ChannelTransaction, error) {
	var rows []models.ChannelTransactionModel
	if err := r.db.WithContext(ctx).
		Where("brand = ? AND channel = ? AND reconciled = ? AND excluded = ?",
			brand.Normalize().String(), finance.SalesChannelWholesale.String(), false, false).
		Order("occurred_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return transactionsToDomain(rows), nil
}

func transactionsToDomain(rows []models.ChannelTransactionModel) []finance.ChannelTransaction {
	transactions := make([]finance.ChannelTransaction, len(rows))
	for i, row := range rows {
		transactions[i] = row.ToDomain()
	}
	return transactions
}

// Ensure TransactionRepository implements the interface
var _ finance.TransactionRepository = (*TransactionRepository)(nil)

package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/infrastructure/persistence/models"
)

// WholesaleRepository implements finance.WholesaleRepository with GORM
type WholesaleRepository struct {
	db *gorm.DB
}

// NewWholesaleRepository creates a new wholesale revenue repository
func NewWholesaleRepository(db *gorm.DB) *WholesaleRepository {
	return &WholesaleRepository{db: db}
}

// FindRange returns wholesale revenue entries for a brand in the date range
func (r *WholesaleRepository) FindRange(ctx context.Context, brand shared.Brand, dateRange finance.DateRange) ([]finance.WholesaleRevenueRecord, error) {
	var rows []models.WholesaleEntryModel
	if err := r.db.WithContext(ctx).
		Where("brand = ? AND occurred_at >= ? AND occurred_at < ?",
			brand.Normalize().String(), dateRange.From, dateRange.To.AddDate(0, 0, 1)).
		Order("occurred_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]finance.WholesaleRevenueRecord, len(rows))
	for i, row := range rows {
		entries[i] = row.ToDomain()
	}
	return entries, nil
}

// Ensure WholesaleRepository implements the interface
var _ finance.WholesaleRepository = (*WholesaleRepository)(nil)

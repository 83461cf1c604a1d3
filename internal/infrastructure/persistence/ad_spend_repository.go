package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/infrastructure/persistence/models"
)

// AdSpendRepository implements finance.AdSpendRepository with GORM
type AdSpendRepository struct {
	db *gorm.DB
}

// NewAdSpendRepository creates a new ad spend repository
func NewAdSpendRepository(db *gorm.DB) *AdSpendRepository {
	return &AdSpendRepository{db: db}
}

// FindRange returns daily ad spend entries for a brand in the date range
func (r *AdSpendRepository) FindRange(ctx context.Context, brand shared.Brand, dateRange finance.DateRange) ([]finance.AdSpendRecord, error) {
	var rows []models.AdSpendEntryModel
	if err := r.db.WithContext(ctx).
		Where("brand = ? AND spent_at >= ? AND spent_at < ?",
			brand.Normalize().String(), dateRange.From, dateRange.To.AddDate(0, 0, 1)).
		Order("spent_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]finance.AdSpendRecord, len(rows))
	for i, row := range rows {
		entries[i] = row.ToDomain()
	}
	return entries, nil
}

// Ensure AdSpendRepository implements the interface
var _ finance.AdSpendRepository = (*AdSpendRepository)(nil)

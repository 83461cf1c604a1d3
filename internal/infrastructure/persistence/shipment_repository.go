package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/infrastructure/persistence/models"
)

// ShipmentRepository implements finance.ShipmentRepository with GORM
type ShipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// FindRange returns shipment cost records for a brand in the date range
func (r *ShipmentRepository) FindRange(ctx context.Context, brand shared.Brand, dateRange finance.DateRange) ([]finance.ShipmentRecord, error) {
	var rows []models.ShipmentModel
	if err := r.db.WithContext(ctx).
		Where("brand = ? AND shipped_at >= ? AND shipped_at < ?",
			brand.Normalize().String(), dateRange.From, dateRange.To.AddDate(0, 0, 1)).
		Order("shipped_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	shipments := make([]finance.ShipmentRecord, len(rows))
	for i, row := range rows {
		shipments[i] = row.ToDomain()
	}
	return shipments, nil
}

// Ensure ShipmentRepository implements the interface
var _ finance.ShipmentRepository = (*ShipmentRepository)(nil)

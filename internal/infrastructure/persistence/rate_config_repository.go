package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/infrastructure/persistence/models"
)

// RateConfigRepository implements finance.RateConfigRepository with GORM
type RateConfigRepository struct {
	db *gorm.DB
}

// NewRateConfigRepository creates a new rate config repository
func NewRateConfigRepository(db *gorm.DB) *RateConfigRepository {
	return &RateConfigRepository{db: db}
}

// FindByBrand returns the brand's rate config, or shared.ErrNotFound when
// the brand has none
func (r *RateConfigRepository) FindByBrand(ctx context.Context, brand shared.Brand) (*finance.RateConfig, error) {
	var row models.RateConfigModel
	if err := r.db.WithContext(ctx).
		Where("brand = ?", brand.Normalize().String()).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Ensure RateConfigRepository implements the interface
var _ finance.RateConfigRepository = (*RateConfigRepository)(nil)

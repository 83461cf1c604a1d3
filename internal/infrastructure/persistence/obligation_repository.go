package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finboard/backend/internal/domain/forecast"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/infrastructure/persistence/models"
)

// ObligationRepository implements forecast.ObligationRepository with GORM
type ObligationRepository struct {
	db *gorm.DB
}

// NewObligationRepository creates a new purchase obligation repository
func NewObligationRepository(db *gorm.DB) *ObligationRepository {
	return &ObligationRepository{db: db}
}

// FindOpen returns the brand's obligations that still owe money. Workflow
// filtering stays in the generator, only settled rows are excluded here.
func (r *ObligationRepository) FindOpen(ctx context.Context, brand shared.Brand) ([]forecast.PurchaseObligation, error) {
	var rows []models.PurchaseObligationModel
	if err := r.db.WithContext(ctx).
		Where("brand = ? AND payment_status <> ?",
			brand.Normalize().String(), forecast.ObligationPaymentPaid.String()).
		Order("due_date ASC NULLS LAST").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	obligations := make([]forecast.PurchaseObligation, len(rows))
	for i, row := range rows {
		obligations[i] = row.ToDomain()
	}
	return obligations, nil
}

// Ensure ObligationRepository implements the interface
var _ forecast.ObligationRepository = (*ObligationRepository)(nil)

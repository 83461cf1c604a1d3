package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finboard/backend/internal/domain/forecast"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/infrastructure/persistence/models"
)

// ExpenseTemplateRepository implements forecast.ExpenseTemplateRepository with GORM
type ExpenseTemplateRepository struct {
	db *gorm.DB
}

// NewExpenseTemplateRepository creates a new expense template repository
func NewExpenseTemplateRepository(db *gorm.DB) *ExpenseTemplateRepository {
	return &ExpenseTemplateRepository{db: db}
}

// FindActive returns the brand's expense templates that have not expired.
// Templates whose end date is in the past never produce events, so they are
// filtered at the query level.
func (r *ExpenseTemplateRepository) FindActive(ctx context.Context, brand shared.Brand) ([]forecast.ExpenseTemplate, error) {
	var rows []models.ExpenseTemplateModel
	if err := r.db.WithContext(ctx).
		Where("brand = ? AND (end_date IS NULL OR end_date >= CURRENT_DATE)", brand.Normalize().String()).
		Order("start_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	templates := make([]forecast.ExpenseTemplate, len(rows))
	for i, row := range rows {
		templates[i] = row.ToDomain()
	}
	return templates, nil
}

// Ensure ExpenseTemplateRepository implements the interface
var _ forecast.ExpenseTemplateRepository = (*ExpenseTemplateRepository)(nil)

package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/infrastructure/persistence/models"
)

// InvoiceRepository implements finance.InvoiceRepository with GORM
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// FindUnlinked returns invoices not yet linked to a transaction. Invoices
// carrying a different brand tag are included on purpose, the matcher
// penalizes them instead of hiding them.
func (r *InvoiceRepository) FindUnlinked(ctx context.Context, brand shared.Brand) ([]finance.InvoiceRecord, error) {
	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("linked = ?", false).
		Order("issued_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	invoices := make([]finance.InvoiceRecord, len(rows))
	for i, row := range rows {
		invoices[i] = row.ToDomain()
	}
	return invoices, nil
}

// Ensure InvoiceRepository implements the interface
var _ finance.InvoiceRepository = (*InvoiceRepository)(nil)

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/finboard/backend/internal/domain/forecast"
	"github.com/finboard/backend/internal/infrastructure/persistence/models"
)

func setupObligationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.PurchaseObligationModel{}))
	return db
}

func seedObligation(t *testing.T, db *gorm.DB, brand, supplier string, payment forecast.ObligationPaymentStatus, workflow forecast.ObligationWorkflowStatus, dueDate *time.Time) {
	now := time.Now()
	row := models.PurchaseObligationModel{
		BrandModel: models.BrandModel{
			BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Brand:     brand,
		},
		SupplierName:   supplier,
		TotalAmount:    decimal.NewFromInt(5000),
		DueDate:        dueDate,
		PaymentStatus:  payment.String(),
		WorkflowStatus: workflow.String(),
	}
	require.NoError(t, db.Create(&row).Error)
}

func TestObligationRepository_FindOpen(t *testing.T) {
	db := setupObligationTestDB(t)
	repo := NewObligationRepository(db)
	ctx := context.Background()

	early := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	seedObligation(t, db, "acme", "Mill House Fabrics", forecast.ObligationPaymentUnpaid, forecast.ObligationWorkflowConfirmed, &early)
	seedObligation(t, db, "acme", "Harbor Packaging", forecast.ObligationPaymentPartial, forecast.ObligationWorkflowInTransit, &late)
	seedObligation(t, db, "acme", "No Due Date Ltd", forecast.ObligationPaymentUnpaid, forecast.ObligationWorkflowDraft, nil)
	seedObligation(t, db, "acme", "Settled Supplier", forecast.ObligationPaymentPaid, forecast.ObligationWorkflowReceived, &early)
	seedObligation(t, db, "other", "Mill House Fabrics", forecast.ObligationPaymentUnpaid, forecast.ObligationWorkflowConfirmed, &early)

	t.Run("excludes settled obligations and orders by due date", func(t *testing.T) {
		obligations, err := repo.FindOpen(ctx, "acme")
		require.NoError(t, err)
		require.Len(t, obligations, 3)
		assert.Equal(t, "Mill House Fabrics", obligations[0].SupplierName)
		assert.Equal(t, "Harbor Packaging", obligations[1].SupplierName)
		assert.Equal(t, "No Due Date Ltd", obligations[2].SupplierName)
	})

	t.Run("keeps workflow states for the generator to filter", func(t *testing.T) {
		obligations, err := repo.FindOpen(ctx, "acme")
		require.NoError(t, err)

		statuses := make([]forecast.ObligationWorkflowStatus, 0, len(obligations))
		for _, o := range obligations {
			statuses = append(statuses, o.WorkflowStatus)
		}
		assert.Contains(t, statuses, forecast.ObligationWorkflowDraft)
	})

	t.Run("returns empty slice for unknown brand", func(t *testing.T) {
		obligations, err := repo.FindOpen(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, obligations)
	})
}

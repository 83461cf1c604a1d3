package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/infrastructure/persistence/models"
)

// dailyRecordUpdateColumns are the columns rewritten when an upsert hits an
// existing (brand, date) row
var dailyRecordUpdateColumns = []string{
	"shopify_revenue",
	"etsy_revenue",
	"wholesale_revenue",
	"shopify_orders",
	"etsy_orders",
	"wholesale_orders",
	"refund_total",
	"refund_count",
	"meta_spend",
	"google_spend",
	"etsy_ads_spend",
	"shipping_cost",
	"cogs",
	"pick_pack_cost",
	"logistics_cost",
	"platform_fees",
	"gross_revenue",
	"net_revenue",
	"gp1",
	"gp2",
	"gp3",
	"total_ad_spend",
	"net_profit",
	"gross_margin_pct",
	"net_margin_pct",
	"mer",
	"poas",
	"blended_aov",
	"updated_at",
}

// DailyRecordRepository implements finance.DailyRecordRepository with GORM
type DailyRecordRepository struct {
	db *gorm.DB
}

// NewDailyRecordRepository creates a new daily record repository
func NewDailyRecordRepository(db *gorm.DB) *DailyRecordRepository {
	return &DailyRecordRepository{db: db}
}

// UpsertBatch writes the records, replacing any prior row with the same
// (brand, date) key
func (r *DailyRecordRepository) UpsertBatch(ctx context.Context, records []*finance.DailyFinancialRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]*models.DailyFinancialRecordModel, len(records))
	for i, record := range records {
		model := &models.DailyFinancialRecordModel{}
		model.FromDomain(record)
		rows[i] = model
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "brand"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(dailyRecordUpdateColumns),
	}).Create(rows).Error
}

// FindRange returns stored records for a brand ordered by date ascending
func (r *DailyRecordRepository) FindRange(ctx context.Context, brand shared.Brand, dateRange finance.DateRange) ([]*finance.DailyFinancialRecord, error) {
	var rows []models.DailyFinancialRecordModel
	if err := r.db.WithContext(ctx).
		Where("brand = ? AND date >= ? AND date <= ?", brand.Normalize().String(), dateRange.From, dateRange.To).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]*finance.DailyFinancialRecord, len(rows))
	for i, row := range rows {
		records[i] = row.ToDomain()
	}
	return records, nil
}

// Ensure DailyRecordRepository implements the interface
var _ finance.DailyRecordRepository = (*DailyRecordRepository)(nil)

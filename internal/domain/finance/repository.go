package finance

import (
	"context"
	"time"

	"github.com/finboard/backend/internal/domain/shared"
)

// DateRange is a closed [From, To] range at day granularity
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange builds a day-truncated range, validating the ordering
func NewDateRange(from, to time.Time) (DateRange, error) {
	from, to = DayOf(from), DayOf(to)
	if from.After(to) {
		return DateRange{}, shared.ErrInvalidRange
	}
	return DateRange{From: from, To: to}, nil
}

// Days returns the number of calendar days covered, inclusive
func (r DateRange) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

// Contains reports whether the day of t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	day := DayOf(t)
	return !day.Before(r.From) && !day.After(r.To)
}

// DailyRecordRepository is the upsert sink for computed daily records
type DailyRecordRepository interface {
	// UpsertBatch writes records keyed by (brand, date), fully replacing
	// any prior row for the same key
	UpsertBatch(ctx context.Context, records []*DailyFinancialRecord) error

	// FindRange returns stored records for a brand ordered by date
	FindRange(ctx context.Context, brand shared.Brand, dateRange DateRange) ([]*DailyFinancialRecord, error)
}

// TransactionRepository reads normalized channel transactions
type TransactionRepository interface {
	// FindRange returns non-excluded transactions for a brand in the range
	FindRange(ctx context.Context, brand shared.Brand, dateRange DateRange) ([]ChannelTransaction, error)

	// FindUnreconciledWholesale returns wholesale transactions not yet
	// linked to an invoice
	FindUnreconciledWholesale(ctx context.Context, brand shared.Brand) ([]ChannelTransaction, error)
}

// ShipmentRepository reads shipment cost records
type ShipmentRepository interface {
	FindRange(ctx context.Context, brand shared.Brand, dateRange DateRange) ([]ShipmentRecord, error)
}

// AdSpendRepository reads daily ad spend entries
type AdSpendRepository interface {
	FindRange(ctx context.Context, brand shared.Brand, dateRange DateRange) ([]AdSpendRecord, error)
}

// WholesaleRepository reads wholesale revenue entries
type WholesaleRepository interface {
	FindRange(ctx context.Context, brand shared.Brand, dateRange DateRange) ([]WholesaleRevenueRecord, error)
}

// InvoiceRepository reads externally imported invoices
type InvoiceRepository interface {
	// FindUnlinked returns invoices not yet linked to a transaction.
	// Brand scoping is best effort: invoices with a missing or different
	// brand tag are still candidates, the matcher demotes them instead.
	FindUnlinked(ctx context.Context, brand shared.Brand) ([]InvoiceRecord, error)
}

// RateConfigRepository resolves per-brand rate configuration
type RateConfigRepository interface {
	// FindByBrand returns the brand's rate config, or shared.ErrNotFound
	// when the brand has none; callers fall back to DefaultRateConfig
	FindByBrand(ctx context.Context, brand shared.Brand) (*RateConfig, error)
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
)

// DailyFinancialRecordModel is the persistence model for the computed
// per-day P&L. Uniquely keyed by (brand, date); upserts replace the row.
type DailyFinancialRecordModel struct {
	BaseModel
	Brand string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_daily_records_brand_date,priority:1"`
	Date  time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_records_brand_date,priority:2"`

	ShopifyRevenue   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	EtsyRevenue      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WholesaleRevenue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShopifyOrders    int64           `gorm:"not null;default:0"`
	EtsyOrders       int64           `gorm:"not null;default:0"`
	WholesaleOrders  int64           `gorm:"not null;default:0"`

	RefundTotal decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RefundCount int64           `gorm:"not null;default:0"`

	MetaSpend    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GoogleSpend  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	EtsyAdsSpend decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	ShippingCost  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	COGS          decimal.Decimal `gorm:"column:cogs;type:decimal(18,4);not null;default:0"`
	PickPackCost  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LogisticsCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PlatformFees  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	GrossRevenue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	NetRevenue   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GP1          decimal.Decimal `gorm:"column:gp1;type:decimal(18,4);not null;default:0"`
	GP2          decimal.Decimal `gorm:"column:gp2;type:decimal(18,4);not null;default:0"`
	GP3          decimal.Decimal `gorm:"column:gp3;type:decimal(18,4);not null;default:0"`
	TotalAdSpend decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	NetProfit    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	GrossMarginPct decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	NetMarginPct   decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	MER            decimal.Decimal `gorm:"column:mer;type:decimal(10,4);not null;default:0"`
	POAS           decimal.Decimal `gorm:"column:poas;type:decimal(10,4);not null;default:0"`
	BlendedAOV     decimal.Decimal `gorm:"column:blended_aov;type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (DailyFinancialRecordModel) TableName() string {
	return "daily_financial_records"
}

// ToDomain converts the persistence model to a domain record
func (m *DailyFinancialRecordModel) ToDomain() *finance.DailyFinancialRecord {
	return &finance.DailyFinancialRecord{
		BrandEntity: shared.BrandEntity{
			BaseEntity: m.BaseModel.ToDomain(),
			Brand:      shared.Brand(m.Brand),
		},
		Date:             m.Date,
		ShopifyRevenue:   m.ShopifyRevenue,
		EtsyRevenue:      m.EtsyRevenue,
		WholesaleRevenue: m.WholesaleRevenue,
		ShopifyOrders:    m.ShopifyOrders,
		EtsyOrders:       m.EtsyOrders,
		WholesaleOrders:  m.WholesaleOrders,
		RefundTotal:      m.RefundTotal,
		RefundCount:      m.RefundCount,
		MetaSpend:        m.MetaSpend,
		GoogleSpend:      m.GoogleSpend,
		EtsyAdsSpend:     m.EtsyAdsSpend,
		ShippingCost:     m.ShippingCost,
		COGS:             m.COGS,
		PickPackCost:     m.PickPackCost,
		LogisticsCost:    m.LogisticsCost,
		PlatformFees:     m.PlatformFees,
		GrossRevenue:     m.GrossRevenue,
		NetRevenue:       m.NetRevenue,
		GP1:              m.GP1,
		GP2:              m.GP2,
		GP3:              m.GP3,
		TotalAdSpend:     m.TotalAdSpend,
		NetProfit:        m.NetProfit,
		GrossMarginPct:   m.GrossMarginPct,
		NetMarginPct:     m.NetMarginPct,
		MER:              m.MER,
		POAS:             m.POAS,
		BlendedAOV:       m.BlendedAOV,
	}
}

// FromDomain populates the persistence model from a domain record
func (m *DailyFinancialRecordModel) FromDomain(r *finance.DailyFinancialRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Brand = r.Brand.Normalize().String()
	m.Date = r.Date
	m.ShopifyRevenue = r.ShopifyRevenue
	m.EtsyRevenue = r.EtsyRevenue
	m.WholesaleRevenue = r.WholesaleRevenue
	m.ShopifyOrders = r.ShopifyOrders
	m.EtsyOrders = r.EtsyOrders
	m.WholesaleOrders = r.WholesaleOrders
	m.RefundTotal = r.RefundTotal
	m.RefundCount = r.RefundCount
	m.MetaSpend = r.MetaSpend
	m.GoogleSpend = r.GoogleSpend
	m.EtsyAdsSpend = r.EtsyAdsSpend
	m.ShippingCost = r.ShippingCost
	m.COGS = r.COGS
	m.PickPackCost = r.PickPackCost
	m.LogisticsCost = r.LogisticsCost
	m.PlatformFees = r.PlatformFees
	m.GrossRevenue = r.GrossRevenue
	m.NetRevenue = r.NetRevenue
	m.GP1 = r.GP1
	m.GP2 = r.GP2
	m.GP3 = r.GP3
	m.TotalAdSpend = r.TotalAdSpend
	m.NetProfit = r.NetProfit
	m.GrossMarginPct = r.GrossMarginPct
	m.NetMarginPct = r.NetMarginPct
	m.MER = r.MER
	m.POAS = r.POAS
	m.BlendedAOV = r.BlendedAOV
}

// ChannelTransactionModel is the persistence model for imported channel
// transactions. Read-only here; the importer owns the writes.
type ChannelTransactionModel struct {
	BrandModel
	Channel          string          `gorm:"type:varchar(20);not null;index"`
	OccurredAt       time.Time       `gorm:"not null;index"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCharged  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Tax              decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency         string          `gorm:"type:varchar(3);not null;default:'GBP'"`
	RawPayload       []byte          `gorm:"type:jsonb"`
	Excluded         bool            `gorm:"not null;default:false;index"`
	Reconciled       bool            `gorm:"not null;default:false;index"`
	CounterpartyName string          `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (ChannelTransactionModel) TableName() string {
	return "channel_transactions"
}

// ToDomain converts the persistence model to a domain transaction
func (m *ChannelTransactionModel) ToDomain() finance.ChannelTransaction {
	return finance.ChannelTransaction{
		BrandEntity:      m.ToDomainBrandEntity(),
		Channel:          finance.SalesChannel(m.Channel),
		OccurredAt:       m.OccurredAt,
		Subtotal:         m.Subtotal,
		ShippingCharged:  m.ShippingCharged,
		Tax:              m.Tax,
		Total:            m.Total,
		Currency:         m.Currency,
		RawPayload:       json.RawMessage(m.RawPayload),
		Excluded:         m.Excluded,
		Reconciled:       m.Reconciled,
		CounterpartyName: m.CounterpartyName,
	}
}

// ShipmentModel is the persistence model for shipment cost records
type ShipmentModel struct {
	BrandModel
	ShippedAt time.Time       `gorm:"not null;index"`
	Cost      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the persistence model to a domain shipment record
func (m *ShipmentModel) ToDomain() finance.ShipmentRecord {
	return finance.ShipmentRecord{
		BrandEntity: m.ToDomainBrandEntity(),
		ShippedAt:   m.ShippedAt,
		Cost:        m.Cost,
	}
}

// AdSpendEntryModel is the persistence model for daily ad spend entries
type AdSpendEntryModel struct {
	BrandModel
	Platform string          `gorm:"type:varchar(20);not null;index"`
	SpentAt  time.Time       `gorm:"not null;index"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (AdSpendEntryModel) TableName() string {
	return "ad_spend_entries"
}

// ToDomain converts the persistence model to a domain ad spend record
func (m *AdSpendEntryModel) ToDomain() finance.AdSpendRecord {
	return finance.AdSpendRecord{
		BrandEntity: m.ToDomainBrandEntity(),
		Platform:    finance.AdPlatform(m.Platform),
		SpentAt:     m.SpentAt,
		Amount:      m.Amount,
	}
}

// WholesaleEntryModel is the persistence model for wholesale revenue entries
type WholesaleEntryModel struct {
	BrandModel
	OccurredAt       time.Time       `gorm:"not null;index"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCharged  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CounterpartyName string          `gorm:"type:varchar(200)"`
	Reconciled       bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (WholesaleEntryModel) TableName() string {
	return "wholesale_entries"
}

// ToDomain converts the persistence model to a domain wholesale record
func (m *WholesaleEntryModel) ToDomain() finance.WholesaleRevenueRecord {
	return finance.WholesaleRevenueRecord{
		BrandEntity:      m.ToDomainBrandEntity(),
		OccurredAt:       m.OccurredAt,
		Subtotal:         m.Subtotal,
		ShippingCharged:  m.ShippingCharged,
		CounterpartyName: m.CounterpartyName,
		Reconciled:       m.Reconciled,
	}
}

// InvoiceModel is the persistence model for externally imported invoices
type InvoiceModel struct {
	BrandModel
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IssuedAt         time.Time       `gorm:"not null;index"`
	CounterpartyName string          `gorm:"type:varchar(200);not null"`
	Linked           bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain invoice record
func (m *InvoiceModel) ToDomain() finance.InvoiceRecord {
	return finance.InvoiceRecord{
		BrandEntity:      m.ToDomainBrandEntity(),
		Amount:           m.Amount,
		IssuedAt:         m.IssuedAt,
		CounterpartyName: m.CounterpartyName,
		Linked:           m.Linked,
	}
}

// ChannelFees stores the per-channel fee schedule as JSONB
type ChannelFees map[string]finance.ChannelFeeSchedule

// Value implements driver.Valuer
func (f ChannelFees) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	payload, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

// Scan implements sql.Scanner
func (f *ChannelFees) Scan(value any) error {
	if value == nil {
		*f = ChannelFees{}
		return nil
	}
	var payload []byte
	switch v := value.(type) {
	case []byte:
		payload = v
	case string:
		payload = []byte(v)
	default:
		return fmt.Errorf("unsupported type for ChannelFees: %T", value)
	}
	return json.Unmarshal(payload, f)
}

// RateConfigModel is the persistence model for per-brand rate configuration
type RateConfigModel struct {
	BaseModel
	Brand         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	COGSRate      decimal.Decimal `gorm:"column:cogs_rate;type:decimal(10,4);not null;default:0"`
	PickPackRate  decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	LogisticsRate decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	ChannelFees   ChannelFees     `gorm:"type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (RateConfigModel) TableName() string {
	return "rate_configs"
}

// ToDomain converts the persistence model to a domain rate config
func (m *RateConfigModel) ToDomain() *finance.RateConfig {
	fees := make(map[finance.SalesChannel]finance.ChannelFeeSchedule, len(m.ChannelFees))
	for channel, schedule := range m.ChannelFees {
		fees[finance.SalesChannel(channel)] = schedule
	}
	return &finance.RateConfig{
		Brand:         shared.Brand(m.Brand),
		COGSRate:      m.COGSRate,
		PickPackRate:  m.PickPackRate,
		LogisticsRate: m.LogisticsRate,
		ChannelFees:   fees,
	}
}

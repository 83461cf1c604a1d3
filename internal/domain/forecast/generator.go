package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
)

// PayoutCadence is how often a sales channel settles funds
type PayoutCadence string

const (
	PayoutCadenceDaily    PayoutCadence = "DAILY"
	PayoutCadenceWeekly   PayoutCadence = "WEEKLY"
	PayoutCadenceBiweekly PayoutCadence = "BIWEEKLY"
	PayoutCadenceMonthly  PayoutCadence = "MONTHLY"
)

// String returns the string representation of PayoutCadence
func (c PayoutCadence) String() string {
	return string(c)
}

// PeriodDays returns the settlement period length in days, 0 for daily and
// for the calendar-month cadence (which walks real month boundaries)
func (c PayoutCadence) PeriodDays() int {
	switch c {
	case PayoutCadenceWeekly:
		return 7
	case PayoutCadenceBiweekly:
		return 14
	}
	return 0
}

// PayoutChannelConfig describes one channel's settlement behavior
type PayoutChannelConfig struct {
	Channel             finance.SalesChannel `json:"channel"`
	Cadence             PayoutCadence        `json:"cadence"`
	SettlementDelayDays int                  `json:"settlement_delay_days"`
	Confidence          int                  `json:"confidence"`
}

// AdBillingModel is how an ad platform invoices accumulated spend
type AdBillingModel string

const (
	// AdBillingThreshold charges a fixed amount every time accumulated
	// spend crosses the billing threshold
	AdBillingThreshold AdBillingModel = "THRESHOLD"
	// AdBillingCalendar invoices once per calendar month
	AdBillingCalendar AdBillingModel = "CALENDAR"
)

// String returns the string representation of AdBillingModel
func (m AdBillingModel) String() string {
	return string(m)
}

// AdBillingConfig describes one ad platform's billing behavior
type AdBillingConfig struct {
	Platform   finance.AdPlatform `json:"platform"`
	Model      AdBillingModel     `json:"model"`
	Threshold  decimal.Decimal    `json:"threshold"`
	Confidence int                `json:"confidence"`
}

// GeneratorConfig carries every parameter of one generation run. "Today"
// and the trailing window are the only temporal anchors; the generator
// never reads the clock or any ambient state itself, so re-running with
// the same config and inputs is deterministic.
type GeneratorConfig struct {
	Today              time.Time
	HorizonDays        int
	TrailingWindowDays int
	ObligationLeadDays int
	Payouts            []PayoutChannelConfig
	AdBilling          []AdBillingConfig
}

// DefaultGeneratorConfig returns the documented defaults: 90-day horizon,
// 7-day trailing window, 14-day obligation lead, daily Shopify payouts,
// weekly-delayed Etsy payouts, Meta threshold billing and Google monthly
// invoicing.
func DefaultGeneratorConfig(today time.Time) GeneratorConfig {
	return GeneratorConfig{
		Today:              finance.DayOf(today),
		HorizonDays:        90,
		TrailingWindowDays: 7,
		ObligationLeadDays: 14,
		Payouts: []PayoutChannelConfig{
			{Channel: finance.SalesChannelShopify, Cadence: PayoutCadenceDaily, SettlementDelayDays: 2, Confidence: 95},
			{Channel: finance.SalesChannelEtsy, Cadence: PayoutCadenceWeekly, SettlementDelayDays: 3, Confidence: 90},
		},
		AdBilling: []AdBillingConfig{
			{Platform: finance.AdPlatformMeta, Model: AdBillingThreshold, Threshold: decimal.NewFromInt(700), Confidence: 85},
			{Platform: finance.AdPlatformGoogle, Model: AdBillingCalendar, Confidence: 95},
		},
	}
}

// HorizonEnd returns the last day covered by the forecast
func (c GeneratorConfig) HorizonEnd() time.Time {
	return c.Today.AddDate(0, 0, c.HorizonDays)
}

// GeneratorInput bundles everything one generation run reads
type GeneratorInput struct {
	Brand       shared.Brand
	History     []*finance.DailyFinancialRecord
	Expenses    []ExpenseTemplate
	Obligations []PurchaseObligation
}

// Generator synthesizes the unified forecast cash event stream. Each
// sub-generator is a pure function of the input and config; the union of
// their outputs is the result.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a generator for one invocation's config
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// Generate runs every sub-generator and returns the combined event list.
// The result is disposable: it is regenerated in full on each run.
func (g *Generator) Generate(input GeneratorInput) []CashEvent {
	events := make([]CashEvent, 0, 64)
	events = append(events, g.payoutEvents(input.Brand, input.History)...)
	events = append(events, g.expenseEvents(input.Expenses)...)
	events = append(events, g.obligationEvents(input.Obligations)...)
	events = append(events, g.adBillingEvents(input.Brand, input.History)...)
	return events
}

// trailingDailyAverage computes the average per-day value over the
// trailing window ending yesterday, using pick to select the measured
// field. Days with no record contribute zero; the divisor is always the
// window length so sparse history dilutes honestly.
func (g *Generator) trailingDailyAverage(history []*finance.DailyFinancialRecord, pick func(*finance.DailyFinancialRecord) decimal.Decimal) decimal.Decimal {
	window := g.config.TrailingWindowDays
	if window <= 0 {
		return decimal.Zero
	}
	windowStart := g.config.Today.AddDate(0, 0, -window)

	sum := decimal.Zero
	for _, record := range history {
		if record.Date.Before(windowStart) || !record.Date.Before(g.config.Today) {
			continue
		}
		sum = sum.Add(pick(record))
	}
	return sum.Div(decimal.NewFromInt(int64(window)))
}

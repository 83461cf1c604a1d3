package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
)

// avgDaysInMonth sizes calendar-model invoices from a daily average
var avgDaysInMonth = decimal.NewFromFloat(30.44)

// adBillingEvents simulates each configured ad platform's billing from its
// trailing daily spend average. Platforms with zero trailing spend emit
// nothing.
func (g *Generator) adBillingEvents(brand shared.Brand, history []*finance.DailyFinancialRecord) []CashEvent {
	var events []CashEvent
	for _, billing := range g.config.AdBilling {
		average := g.trailingDailyAverage(history, func(r *finance.DailyFinancialRecord) decimal.Decimal {
			return r.SpendFor(billing.Platform)
		})
		if !average.IsPositive() {
			continue
		}

		switch billing.Model {
		case AdBillingThreshold:
			events = append(events, g.thresholdCharges(brand, billing, average)...)
		case AdBillingCalendar:
			events = append(events, g.calendarInvoices(brand, billing, average)...)
		}
	}
	return events
}

// thresholdCharges simulates accumulate-and-charge billing: with threshold
// T and daily average s, a charge of exactly T lands every T/s days. The
// flat-average assumption is a deliberate simplification; the probability
// discount reflects the timing uncertainty it introduces.
func (g *Generator) thresholdCharges(brand shared.Brand, billing AdBillingConfig, average decimal.Decimal) []CashEvent {
	if !billing.Threshold.IsPositive() {
		return nil
	}

	gapDays := chargeGapDays(billing.Threshold, average)
	horizonEnd := g.config.HorizonEnd()
	note := fmt.Sprintf("%s threshold charge, est. every %dd", billing.Platform, gapDays)

	var events []CashEvent
	for day := g.config.Today.AddDate(0, 0, gapDays); !day.After(horizonEnd); day = day.AddDate(0, 0, gapDays) {
		events = append(events, NewForecastEvent(
			&brand, day, CashEventTypeAdPlatformInvoice,
			billing.Threshold, billing.Confidence, false, note,
		))
	}
	return events
}

// chargeGapDays returns the expected whole-day interval between threshold
// charges, never less than one day
func chargeGapDays(threshold, dailyAverage decimal.Decimal) int {
	ratio, _ := threshold.Div(dailyAverage).Float64()
	gap := int(math.Round(ratio))
	if gap < 1 {
		gap = 1
	}
	return gap
}

// calendarInvoices emits one invoice at the start of each forecast month,
// sized at the trailing daily average over a mean-length month
func (g *Generator) calendarInvoices(brand shared.Brand, billing AdBillingConfig, average decimal.Decimal) []CashEvent {
	amount := average.Mul(avgDaysInMonth)
	horizonEnd := g.config.HorizonEnd()
	note := fmt.Sprintf("%s monthly invoice, trailing %dd avg", billing.Platform, g.config.TrailingWindowDays)

	var events []CashEvent
	first := time.Date(g.config.Today.Year(), g.config.Today.Month(), 1, 0, 0, 0, 0, time.UTC)
	for monthStart := first.AddDate(0, 1, 0); !monthStart.After(horizonEnd); monthStart = monthStart.AddDate(0, 1, 0) {
		events = append(events, NewForecastEvent(
			&brand, monthStart, CashEventTypeAdPlatformInvoice,
			amount, billing.Confidence, true, note,
		))
	}
	return events
}

package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
)

// payoutEvents estimates settlement inflows per configured channel from
// the trailing daily revenue average. Channels with no trailing revenue
// emit nothing.
func (g *Generator) payoutEvents(brand shared.Brand, history []*finance.DailyFinancialRecord) []CashEvent {
	var events []CashEvent
	for _, payout := range g.config.Payouts {
		average := g.trailingDailyAverage(history, func(r *finance.DailyFinancialRecord) decimal.Decimal {
			return r.RevenueFor(payout.Channel)
		})
		if !average.IsPositive() {
			continue
		}

		switch payout.Cadence {
		case PayoutCadenceDaily:
			events = append(events, g.dailyPayouts(brand, payout, average)...)
		case PayoutCadenceWeekly, PayoutCadenceBiweekly:
			events = append(events, g.periodicPayouts(brand, payout, average)...)
		case PayoutCadenceMonthly:
			events = append(events, g.monthlyPayouts(brand, payout, average)...)
		}
	}
	return events
}

// dailyPayouts emits one settlement per business day, sized at the
// trailing average, starting after the settlement delay
func (g *Generator) dailyPayouts(brand shared.Brand, payout PayoutChannelConfig, average decimal.Decimal) []CashEvent {
	var events []CashEvent
	horizonEnd := g.config.HorizonEnd()
	note := fmt.Sprintf("%s daily settlement, trailing %dd avg", payout.Channel, g.config.TrailingWindowDays)

	for day := g.config.Today.AddDate(0, 0, payout.SettlementDelayDays); !day.After(horizonEnd); day = day.AddDate(0, 0, 1) {
		if isWeekend(day) {
			continue
		}
		events = append(events, NewForecastEvent(&brand, day, CashEventTypePayout, average, payout.Confidence, false, note))
	}
	return events
}

// periodicPayouts emits one settlement per fixed-length period, dated at
// the period boundary plus the settlement delay and sized at
// average * periodDays
func (g *Generator) periodicPayouts(brand shared.Brand, payout PayoutChannelConfig, average decimal.Decimal) []CashEvent {
	periodDays := payout.Cadence.PeriodDays()
	if periodDays <= 0 {
		return nil
	}

	var events []CashEvent
	horizonEnd := g.config.HorizonEnd()
	amount := average.Mul(decimal.NewFromInt(int64(periodDays)))
	note := fmt.Sprintf("%s %s settlement, trailing %dd avg", payout.Channel, payout.Cadence, g.config.TrailingWindowDays)

	for boundary := g.config.Today.AddDate(0, 0, periodDays); ; boundary = boundary.AddDate(0, 0, periodDays) {
		payDate := boundary.AddDate(0, 0, payout.SettlementDelayDays)
		if payDate.After(horizonEnd) {
			break
		}
		events = append(events, NewForecastEvent(&brand, payDate, CashEventTypePayout, amount, payout.Confidence, false, note))
	}
	return events
}

// monthlyPayouts emits one settlement per calendar month, at month end
// plus the settlement delay, sized at average * days in that month
func (g *Generator) monthlyPayouts(brand shared.Brand, payout PayoutChannelConfig, average decimal.Decimal) []CashEvent {
	var events []CashEvent
	horizonEnd := g.config.HorizonEnd()
	note := fmt.Sprintf("%s monthly settlement, trailing %dd avg", payout.Channel, g.config.TrailingWindowDays)

	for monthEnd := lastOfMonth(g.config.Today); ; monthEnd = lastOfMonth(monthEnd.AddDate(0, 0, 1)) {
		payDate := monthEnd.AddDate(0, 0, payout.SettlementDelayDays)
		if payDate.After(horizonEnd) {
			break
		}
		if payDate.Before(g.config.Today) {
			continue
		}
		amount := average.Mul(decimal.NewFromInt(int64(monthEnd.Day())))
		events = append(events, NewForecastEvent(&brand, payDate, CashEventTypePayout, amount, payout.Confidence, false, note))
	}
	return events
}

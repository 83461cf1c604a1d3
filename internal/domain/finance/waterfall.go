package finance

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ApplyWaterfall computes the cascading margin tiers and derived ratios on
// an aggregated record in place, using the given rate configuration.
//
// The cascade, in order:
//
//	netRevenue   = grossRevenue - refunds
//	cogs         = netRevenue * cogsRate
//	GP1          = netRevenue - cogs
//	GP2          = GP1 - pickPack - logistics - platformFees
//	GP3          = GP2 - totalAdSpend
//
// Every ratio defaults to zero when its denominator is zero or negative.
func ApplyWaterfall(record *DailyFinancialRecord, rates RateConfig) {
	record.GrossRevenue = record.GrossChannelRevenue()
	record.NetRevenue = record.GrossRevenue.Sub(record.RefundTotal)

	record.COGS = record.NetRevenue.Mul(rates.COGSRate)
	record.GP1 = record.NetRevenue.Sub(record.COGS)

	record.PickPackCost = record.NetRevenue.Mul(rates.PickPackRate)
	record.LogisticsCost = record.NetRevenue.Mul(rates.LogisticsRate)
	record.PlatformFees = platformFees(record, rates)

	record.GP2 = record.GP1.
		Sub(record.PickPackCost).
		Sub(record.LogisticsCost).
		Sub(record.PlatformFees)

	record.TotalAdSpend = record.MetaSpend.Add(record.GoogleSpend).Add(record.EtsyAdsSpend)
	record.GP3 = record.GP2.Sub(record.TotalAdSpend)
	record.NetProfit = record.GP3

	applyRatios(record)
}

// platformFees sums each channel's variable fee on its revenue plus the
// fixed fee per order
func platformFees(record *DailyFinancialRecord, rates RateConfig) decimal.Decimal {
	fees := decimal.Zero
	for _, channel := range AllSalesChannels() {
		schedule := rates.FeesFor(channel)
		variable := record.RevenueFor(channel).Mul(schedule.VariableRate)
		fixed := schedule.FixedPerOrder.Mul(decimal.NewFromInt(record.OrdersFor(channel)))
		fees = fees.Add(variable).Add(fixed)
	}
	return fees
}

func applyRatios(record *DailyFinancialRecord) {
	record.GrossMarginPct = safePct(record.GP1, record.NetRevenue)
	record.NetMarginPct = safePct(record.GP3, record.NetRevenue)
	record.MER = safeDiv(record.GrossRevenue, record.TotalAdSpend)
	record.POAS = safePct(record.GP3, record.TotalAdSpend)

	orders := decimal.NewFromInt(record.TotalOrders())
	record.BlendedAOV = safeDiv(record.GrossRevenue, orders)
}

// safePct returns numerator/denominator*100, zero if the denominator is
// not positive
func safePct(numerator, denominator decimal.Decimal) decimal.Decimal {
	if !denominator.IsPositive() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Mul(hundred)
}

// safeDiv returns numerator/denominator, zero if the denominator is not
// positive
func safeDiv(numerator, denominator decimal.Decimal) decimal.Decimal {
	if !denominator.IsPositive() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}

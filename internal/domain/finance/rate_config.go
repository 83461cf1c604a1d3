package finance

import (
	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/shared"
)

// ChannelFeeSchedule defines the platform fee model for one sales channel:
// a variable percentage of channel revenue plus a fixed amount per order
type ChannelFeeSchedule struct {
	VariableRate  decimal.Decimal `json:"variable_rate"`
	FixedPerOrder decimal.Decimal `json:"fixed_per_order"`
}

// RateConfig holds the per-brand rate parameters the margin waterfall uses.
// It is passed explicitly into every calculation; the engine never reads
// rates from ambient state.
type RateConfig struct {
	Brand         shared.Brand                        `json:"brand"`
	COGSRate      decimal.Decimal                     `json:"cogs_rate"`
	PickPackRate  decimal.Decimal                     `json:"pick_pack_rate"`
	LogisticsRate decimal.Decimal                     `json:"logistics_rate"`
	ChannelFees   map[SalesChannel]ChannelFeeSchedule `json:"channel_fees"`
}

// DefaultRateConfig returns the documented fallback rates used when a brand
// has no configuration of its own: COGS 30%, pick/pack 5%, logistics 3%,
// typical marketplace fee schedules per channel.
func DefaultRateConfig(brand shared.Brand) RateConfig {
	return RateConfig{
		Brand:         brand,
		COGSRate:      decimal.NewFromFloat(0.30),
		PickPackRate:  decimal.NewFromFloat(0.05),
		LogisticsRate: decimal.NewFromFloat(0.03),
		ChannelFees: map[SalesChannel]ChannelFeeSchedule{
			SalesChannelShopify: {
				VariableRate:  decimal.NewFromFloat(0.029),
				FixedPerOrder: decimal.NewFromFloat(0.30),
			},
			SalesChannelEtsy: {
				VariableRate:  decimal.NewFromFloat(0.065),
				FixedPerOrder: decimal.NewFromFloat(0.20),
			},
			SalesChannelWholesale: {
				VariableRate:  decimal.Zero,
				FixedPerOrder: decimal.Zero,
			},
		},
	}
}

// FeesFor returns the fee schedule for a channel, zero fees if unconfigured
func (c RateConfig) FeesFor(channel SalesChannel) ChannelFeeSchedule {
	if schedule, ok := c.ChannelFees[channel]; ok {
		return schedule
	}
	return ChannelFeeSchedule{VariableRate: decimal.Zero, FixedPerOrder: decimal.Zero}
}

// Validate checks the configured rates are sane percentages
func (c RateConfig) Validate() error {
	one := decimal.NewFromInt(1)
	for _, rate := range []decimal.Decimal{c.COGSRate, c.PickPackRate, c.LogisticsRate} {
		if rate.IsNegative() || rate.GreaterThan(one) {
			return shared.NewDomainError("INVALID_RATE", "Rates must be fractions in [0, 1]")
		}
	}
	return nil
}

package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/shared"
)

// DailyFinancialRecord is the fully computed P&L for one brand on one
// calendar day. It is keyed by (brand, date) and recomputed whole on every
// aggregator run: the upsert replaces any prior value, never patches it.
type DailyFinancialRecord struct {
	shared.BrandEntity
	Date time.Time `json:"date"`

	// Revenue accumulators per channel
	ShopifyRevenue   decimal.Decimal `json:"shopify_revenue"`
	EtsyRevenue      decimal.Decimal `json:"etsy_revenue"`
	WholesaleRevenue decimal.Decimal `json:"wholesale_revenue"`
	ShopifyOrders    int64           `json:"shopify_orders"`
	EtsyOrders       int64           `json:"etsy_orders"`
	WholesaleOrders  int64           `json:"wholesale_orders"`

	// Refunds
	RefundTotal decimal.Decimal `json:"refund_total"`
	RefundCount int64           `json:"refund_count"`

	// Ad spend per platform
	MetaSpend    decimal.Decimal `json:"meta_spend"`
	GoogleSpend  decimal.Decimal `json:"google_spend"`
	EtsyAdsSpend decimal.Decimal `json:"etsy_ads_spend"`

	// Direct costs
	ShippingCost decimal.Decimal `json:"shipping_cost"`

	// Computed cost fields
	COGS          decimal.Decimal `json:"cogs"`
	PickPackCost  decimal.Decimal `json:"pick_pack_cost"`
	LogisticsCost decimal.Decimal `json:"logistics_cost"`
	PlatformFees  decimal.Decimal `json:"platform_fees"`

	// Computed tiers
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
	NetRevenue   decimal.Decimal `json:"net_revenue"`
	GP1          decimal.Decimal `json:"gp1"`
	GP2          decimal.Decimal `json:"gp2"`
	GP3          decimal.Decimal `json:"gp3"`
	TotalAdSpend decimal.Decimal `json:"total_ad_spend"`
	NetProfit    decimal.Decimal `json:"net_profit"`

	// Computed ratios, zero when the denominator is zero
	GrossMarginPct decimal.Decimal `json:"gross_margin_pct"`
	NetMarginPct   decimal.Decimal `json:"net_margin_pct"`
	MER            decimal.Decimal `json:"mer"`
	POAS           decimal.Decimal `json:"poas"`
	BlendedAOV     decimal.Decimal `json:"blended_aov"`
}

// GrossChannelRevenue returns the sum of revenue over all channels
func (r *DailyFinancialRecord) GrossChannelRevenue() decimal.Decimal {
	return r.ShopifyRevenue.Add(r.EtsyRevenue).Add(r.WholesaleRevenue)
}

// TotalOrders returns the order count summed over all channels
func (r *DailyFinancialRecord) TotalOrders() int64 {
	return r.ShopifyOrders + r.EtsyOrders + r.WholesaleOrders
}

// RevenueFor returns the revenue accumulated for a channel
func (r *DailyFinancialRecord) RevenueFor(channel SalesChannel) decimal.Decimal {
	switch channel {
	case SalesChannelShopify:
		return r.ShopifyRevenue
	case SalesChannelEtsy:
		return r.EtsyRevenue
	case SalesChannelWholesale:
		return r.WholesaleRevenue
	}
	return decimal.Zero
}

// OrdersFor returns the order count accumulated for a channel
func (r *DailyFinancialRecord) OrdersFor(channel SalesChannel) int64 {
	switch channel {
	case SalesChannelShopify:
		return r.ShopifyOrders
	case SalesChannelEtsy:
		return r.EtsyOrders
	case SalesChannelWholesale:
		return r.WholesaleOrders
	}
	return 0
}

// SpendFor returns the ad spend accumulated for a platform
func (r *DailyFinancialRecord) SpendFor(platform AdPlatform) decimal.Decimal {
	switch platform {
	case AdPlatformMeta:
		return r.MetaSpend
	case AdPlatformGoogle:
		return r.GoogleSpend
	case AdPlatformEtsyAds:
		return r.EtsyAdsSpend
	}
	return decimal.Zero
}

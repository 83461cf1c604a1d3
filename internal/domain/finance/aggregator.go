package finance

import (
	"sort"
	"time"

	"github.com/finboard/backend/internal/domain/shared"
)

// AggregateInput carries the four input streams for one brand over a date
// range. Streams may be nil or empty; missing data contributes zero, it is
// never an error.
type AggregateInput struct {
	Brand        shared.Brand
	Transactions []ChannelTransaction
	Shipments    []ShipmentRecord
	AdSpend      []AdSpendRecord
	Wholesale    []WholesaleRevenueRecord
}

// Aggregate buckets the input streams into one DailyFinancialRecord per
// calendar day encountered, with only the raw accumulator fields populated.
// Tier computation happens afterwards in the waterfall. Records are
// returned ordered by date so repeated runs over the same input produce
// identical output.
func Aggregate(input AggregateInput) []*DailyFinancialRecord {
	buckets := make(map[time.Time]*DailyFinancialRecord)

	bucketFor := func(t time.Time) *DailyFinancialRecord {
		day := DayOf(t)
		if b, ok := buckets[day]; ok {
			return b
		}
		b := &DailyFinancialRecord{
			BrandEntity: shared.NewBrandEntity(input.Brand),
			Date:        day,
		}
		buckets[day] = b
		return b
	}

	for _, txn := range input.Transactions {
		if txn.Excluded {
			continue
		}
		b := bucketFor(txn.OccurredAt)
		switch txn.Channel {
		case SalesChannelShopify:
			b.ShopifyRevenue = b.ShopifyRevenue.Add(txn.Subtotal)
			b.ShopifyOrders++
		case SalesChannelEtsy:
			b.EtsyRevenue = b.EtsyRevenue.Add(txn.Subtotal)
			b.EtsyOrders++
		case SalesChannelWholesale:
			b.WholesaleRevenue = b.WholesaleRevenue.Add(txn.Subtotal)
			b.WholesaleOrders++
		}

		refund := ExtractRefund(txn.Channel, txn.RawPayload, txn.Total)
		if refund.Amount.IsPositive() {
			b.RefundTotal = b.RefundTotal.Add(refund.Amount)
			b.RefundCount += int64(refund.Count)
		}
	}

	for _, shipment := range input.Shipments {
		b := bucketFor(shipment.ShippedAt)
		b.ShippingCost = b.ShippingCost.Add(shipment.Cost)
	}

	for _, spend := range input.AdSpend {
		b := bucketFor(spend.SpentAt)
		switch spend.Platform {
		case AdPlatformMeta:
			b.MetaSpend = b.MetaSpend.Add(spend.Amount)
		case AdPlatformGoogle:
			b.GoogleSpend = b.GoogleSpend.Add(spend.Amount)
		case AdPlatformEtsyAds:
			b.EtsyAdsSpend = b.EtsyAdsSpend.Add(spend.Amount)
		}
	}

	for _, entry := range input.Wholesale {
		b := bucketFor(entry.OccurredAt)
		b.WholesaleRevenue = b.WholesaleRevenue.Add(entry.Subtotal)
		b.WholesaleOrders++
	}

	records := make([]*DailyFinancialRecord, 0, len(buckets))
	for _, b := range buckets {
		records = append(records, b)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records
}

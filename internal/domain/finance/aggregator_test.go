package finance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard/backend/internal/domain/shared"
)

func txn(channel SalesChannel, day time.Time, subtotal float64) ChannelTransaction {
	return ChannelTransaction{
		BrandEntity: shared.NewBrandEntity("acme"),
		Channel:     channel,
		OccurredAt:  day,
		Subtotal:    decimal.NewFromFloat(subtotal),
		Total:       decimal.NewFromFloat(subtotal),
	}
}

func TestAggregate(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	day1Later := time.Date(2025, 3, 1, 22, 15, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 11, 0, 0, 0, time.UTC)

	t.Run("buckets by truncated calendar day", func(t *testing.T) {
		records := Aggregate(AggregateInput{
			Brand: "acme",
			Transactions: []ChannelTransaction{
				txn(SalesChannelShopify, day1, 100),
				txn(SalesChannelShopify, day1Later, 50),
				txn(SalesChannelEtsy, day2, 25),
			},
		})
		require.Len(t, records, 2)

		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
		assert.True(t, records[0].ShopifyRevenue.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, int64(2), records[0].ShopifyOrders)

		assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), records[1].Date)
		assert.True(t, records[1].EtsyRevenue.Equal(decimal.NewFromInt(25)))
		assert.Equal(t, int64(1), records[1].EtsyOrders)
	})

	t.Run("excluded transactions are skipped", func(t *testing.T) {
		excluded := txn(SalesChannelShopify, day1, 999)
		excluded.Excluded = true
		records := Aggregate(AggregateInput{
			Brand:        "acme",
			Transactions: []ChannelTransaction{excluded, txn(SalesChannelShopify, day1, 10)},
		})
		require.Len(t, records, 1)
		assert.True(t, records[0].ShopifyRevenue.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, int64(1), records[0].ShopifyOrders)
	})

	t.Run("refunds accumulate from raw payloads", func(t *testing.T) {
		refunded := txn(SalesChannelShopify, day1, 80)
		refunded.RawPayload = json.RawMessage(`{"financial_status":"refunded"}`)
		records := Aggregate(AggregateInput{
			Brand:        "acme",
			Transactions: []ChannelTransaction{refunded},
		})
		require.Len(t, records, 1)
		assert.True(t, records[0].RefundTotal.Equal(decimal.NewFromInt(80)))
		assert.Equal(t, int64(1), records[0].RefundCount)
	})

	t.Run("all four streams land in the same day bucket", func(t *testing.T) {
		records := Aggregate(AggregateInput{
			Brand:        "acme",
			Transactions: []ChannelTransaction{txn(SalesChannelShopify, day1, 100)},
			Shipments: []ShipmentRecord{
				{BrandEntity: shared.NewBrandEntity("acme"), ShippedAt: day1Later, Cost: decimal.NewFromFloat(4.20)},
			},
			AdSpend: []AdSpendRecord{
				{BrandEntity: shared.NewBrandEntity("acme"), Platform: AdPlatformMeta, SpentAt: day1, Amount: decimal.NewFromInt(30)},
				{BrandEntity: shared.NewBrandEntity("acme"), Platform: AdPlatformGoogle, SpentAt: day1, Amount: decimal.NewFromInt(20)},
			},
			Wholesale: []WholesaleRevenueRecord{
				{BrandEntity: shared.NewBrandEntity("acme"), OccurredAt: day1, Subtotal: decimal.NewFromInt(500)},
			},
		})
		require.Len(t, records, 1)
		b := records[0]
		assert.True(t, b.ShippingCost.Equal(decimal.NewFromFloat(4.20)))
		assert.True(t, b.MetaSpend.Equal(decimal.NewFromInt(30)))
		assert.True(t, b.GoogleSpend.Equal(decimal.NewFromInt(20)))
		assert.True(t, b.WholesaleRevenue.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, int64(1), b.WholesaleOrders)
	})

	t.Run("empty streams produce no records, no error", func(t *testing.T) {
		records := Aggregate(AggregateInput{Brand: "acme"})
		assert.Empty(t, records)
	})

	t.Run("aggregation is deterministic across runs", func(t *testing.T) {
		input := AggregateInput{
			Brand: "acme",
			Transactions: []ChannelTransaction{
				txn(SalesChannelShopify, day2, 10),
				txn(SalesChannelEtsy, day1, 20),
				txn(SalesChannelShopify, day1, 30),
			},
		}
		first := Aggregate(input)
		second := Aggregate(input)
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].Date, second[i].Date)
			assert.True(t, first[i].ShopifyRevenue.Equal(second[i].ShopifyRevenue))
			assert.True(t, first[i].EtsyRevenue.Equal(second[i].EtsyRevenue))
		}
	})
}

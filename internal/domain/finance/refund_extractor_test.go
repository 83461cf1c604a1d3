package finance

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExtractRefund(t *testing.T) {
	total := decimal.NewFromFloat(120.50)

	t.Run("shopify full refund uses the transaction total", func(t *testing.T) {
		payload := json.RawMessage(`{"financial_status":"refunded"}`)
		result := ExtractRefund(SalesChannelShopify, payload, total)
		assert.True(t, result.Amount.Equal(total))
		assert.Equal(t, 1, result.Count)
	})

	t.Run("shopify partial refund sums refund transactions", func(t *testing.T) {
		payload := json.RawMessage(`{
			"financial_status": "partially_refunded",
			"refunds": [
				{"transactions": [{"amount": "10.00"}, {"amount": "5.50"}]},
				{"transactions": [{"amount": 4.50}]}
			]
		}`)
		result := ExtractRefund(SalesChannelShopify, payload, total)
		assert.True(t, result.Amount.Equal(decimal.NewFromFloat(20.00)), "got %s", result.Amount)
		assert.Equal(t, 3, result.Count)
	})

	t.Run("shopify single refund object instead of list is normalized", func(t *testing.T) {
		payload := json.RawMessage(`{
			"financial_status": "partially_refunded",
			"refunds": {"transactions": {"amount": "7.25"}}
		}`)
		result := ExtractRefund(SalesChannelShopify, payload, total)
		assert.True(t, result.Amount.Equal(decimal.NewFromFloat(7.25)))
		assert.Equal(t, 1, result.Count)
	})

	t.Run("shopify paid order has no refund", func(t *testing.T) {
		payload := json.RawMessage(`{"financial_status":"paid"}`)
		result := ExtractRefund(SalesChannelShopify, payload, total)
		assert.True(t, result.Amount.IsZero())
	})

	t.Run("etsy sums absolute value of refund adjustments only", func(t *testing.T) {
		payload := json.RawMessage(`{
			"adjustments": [
				{"type": "refund", "amount": -12.00},
				{"type": "fee", "amount": -1.00},
				{"type": "REFUND", "amount": "-3.00"}
			]
		}`)
		result := ExtractRefund(SalesChannelEtsy, payload, total)
		assert.True(t, result.Amount.Equal(decimal.NewFromFloat(15.00)), "got %s", result.Amount)
		assert.Equal(t, 2, result.Count)
	})

	t.Run("unknown channel yields zero", func(t *testing.T) {
		payload := json.RawMessage(`{"financial_status":"refunded"}`)
		result := ExtractRefund(SalesChannel("amazon"), payload, total)
		assert.True(t, result.Amount.IsZero())
	})

	t.Run("malformed payload yields zero, never an error", func(t *testing.T) {
		result := ExtractRefund(SalesChannelShopify, json.RawMessage(`{not json`), total)
		assert.True(t, result.Amount.IsZero())

		result = ExtractRefund(SalesChannelEtsy, json.RawMessage(`[1,2,3]`), total)
		assert.True(t, result.Amount.IsZero())
	})

	t.Run("empty payload yields zero", func(t *testing.T) {
		result := ExtractRefund(SalesChannelShopify, nil, total)
		assert.True(t, result.Amount.IsZero())
		assert.Equal(t, 0, result.Count)
	})

	t.Run("unparseable amounts are skipped", func(t *testing.T) {
		payload := json.RawMessage(`{
			"financial_status": "partially_refunded",
			"refunds": [{"transactions": [{"amount": "abc"}, {"amount": "2.00"}]}]
		}`)
		result := ExtractRefund(SalesChannelShopify, payload, total)
		assert.True(t, result.Amount.Equal(decimal.NewFromFloat(2.00)))
		assert.Equal(t, 1, result.Count)
	})
}

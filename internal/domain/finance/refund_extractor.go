package finance

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// RefundResult is the outcome of parsing one transaction's provider payload
type RefundResult struct {
	Amount decimal.Decimal
	Count  int
}

// shopifyPayload is the subset of the Shopify order payload relevant to
// refund extraction. Refund transactions sometimes arrive as a single
// object instead of a list; flexList absorbs both shapes.
type shopifyPayload struct {
	FinancialStatus string          `json:"financial_status"`
	Refunds         flexList[shopifyRefund] `json:"refunds"`
}

type shopifyRefund struct {
	Transactions flexList[shopifyRefundTransaction] `json:"transactions"`
}

type shopifyRefundTransaction struct {
	Amount flexAmount `json:"amount"`
	Kind   string     `json:"kind"`
}

// etsyPayload is the subset of the Etsy receipt payload relevant to refund
// extraction. Adjustments carry a type tag; only "refund" entries count.
type etsyPayload struct {
	Adjustments flexList[etsyAdjustment] `json:"adjustments"`
}

type etsyAdjustment struct {
	Type   string     `json:"type"`
	Amount flexAmount `json:"amount"`
}

// ExtractRefund parses a transaction's raw provider payload and returns the
// refund amount and number of refund entries found. It is pure, never
// returns an error, and degrades to zero on any unrecognized shape so a
// malformed payload can never block aggregation.
func ExtractRefund(channel SalesChannel, rawPayload json.RawMessage, total decimal.Decimal) RefundResult {
	if len(rawPayload) == 0 {
		return RefundResult{Amount: decimal.Zero}
	}

	switch channel {
	case SalesChannelShopify:
		return extractShopifyRefund(rawPayload, total)
	case SalesChannelEtsy:
		return extractEtsyRefund(rawPayload)
	default:
		return RefundResult{Amount: decimal.Zero}
	}
}

func extractShopifyRefund(rawPayload json.RawMessage, total decimal.Decimal) RefundResult {
	var payload shopifyPayload
	if err := json.Unmarshal(rawPayload, &payload); err != nil {
		return RefundResult{Amount: decimal.Zero}
	}

	switch strings.ToLower(payload.FinancialStatus) {
	case "refunded":
		// Fully refunded orders refund the whole total regardless of what
		// the refund sub-transactions sum to.
		return RefundResult{Amount: total, Count: 1}
	case "partially_refunded":
		sum := decimal.Zero
		count := 0
		for _, refund := range payload.Refunds {
			for _, txn := range refund.Transactions {
				amount := txn.Amount.Decimal()
				if amount.IsZero() {
					continue
				}
				sum = sum.Add(amount.Abs())
				count++
			}
		}
		return RefundResult{Amount: sum, Count: count}
	default:
		return RefundResult{Amount: decimal.Zero}
	}
}

func extractEtsyRefund(rawPayload json.RawMessage) RefundResult {
	var payload etsyPayload
	if err := json.Unmarshal(rawPayload, &payload); err != nil {
		return RefundResult{Amount: decimal.Zero}
	}

	sum := decimal.Zero
	count := 0
	for _, adj := range payload.Adjustments {
		if !strings.EqualFold(adj.Type, "refund") {
			continue
		}
		amount := adj.Amount.Decimal()
		if amount.IsZero() {
			continue
		}
		sum = sum.Add(amount.Abs())
		count++
	}
	return RefundResult{Amount: sum, Count: count}
}

// flexList unmarshals either a JSON array or a single JSON object into a
// slice. Some provider exports collapse one-element lists into bare
// objects; normalizing here keeps the extraction logic to one shape.
type flexList[T any] []T

// UnmarshalJSON implements json.Unmarshaler
func (l *flexList[T]) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			*l = nil
			return nil
		}
		*l = items
		return nil
	}
	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		*l = nil
		return nil
	}
	*l = []T{single}
	return nil
}

// flexAmount unmarshals a monetary amount that providers serialize either
// as a JSON number or as a quoted string
type flexAmount struct {
	value decimal.Decimal
}

// Decimal returns the parsed amount, zero if unparseable
func (a flexAmount) Decimal() decimal.Decimal {
	return a.value
}

// UnmarshalJSON implements json.Unmarshaler
func (a *flexAmount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		a.value = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.value = decimal.Zero
		return nil
	}
	a.value = d
	return nil
}

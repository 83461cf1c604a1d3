package finance

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/shared"
)

// ChannelTransaction is a normalized order-level transaction from any sales
// channel. The raw provider payload is retained for refund parsing only;
// everything else arrives already normalized by the importer.
type ChannelTransaction struct {
	shared.BrandEntity
	Channel          SalesChannel    `json:"channel"`
	OccurredAt       time.Time       `json:"occurred_at"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	ShippingCharged  decimal.Decimal `json:"shipping_charged"`
	Tax              decimal.Decimal `json:"tax"`
	Total            decimal.Decimal `json:"total"`
	Currency         string          `json:"currency"`
	RawPayload       json.RawMessage `json:"raw_payload,omitempty"`
	Excluded         bool            `json:"excluded"`
	Reconciled       bool            `json:"reconciled"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
}

// ShipmentRecord is a fulfilled shipment and the cost we paid for it
type ShipmentRecord struct {
	shared.BrandEntity
	ShippedAt time.Time       `json:"shipped_at"`
	Cost      decimal.Decimal `json:"cost"`
}

// AdSpendRecord is one day's spend on one ad platform
type AdSpendRecord struct {
	shared.BrandEntity
	Platform AdPlatform      `json:"platform"`
	SpentAt  time.Time       `json:"spent_at"`
	Amount   decimal.Decimal `json:"amount"`
}

// WholesaleRevenueRecord is revenue recorded against a wholesale account
type WholesaleRevenueRecord struct {
	shared.BrandEntity
	OccurredAt       time.Time       `json:"occurred_at"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	ShippingCharged  decimal.Decimal `json:"shipping_charged"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
	Reconciled       bool            `json:"reconciled"`
}

// InvoiceRecord is an externally imported invoice used for reconciliation
type InvoiceRecord struct {
	shared.BrandEntity
	Amount           decimal.Decimal `json:"amount"`
	IssuedAt         time.Time       `json:"issued_at"`
	CounterpartyName string          `json:"counterparty_name"`
	Linked           bool            `json:"linked"`
}

// DayOf truncates a timestamp to calendar-day granularity in UTC. All
// bucketing keys on the result, so two records on the same day always land
// in the same bucket regardless of time of day.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

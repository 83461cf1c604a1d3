package forecast

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/shared"
)

// FlowDirection is the inflow/outflow nature implied by an event type
type FlowDirection int

const (
	// FlowInflow means the event increases the cash balance
	FlowInflow FlowDirection = 1
	// FlowOutflow means the event decreases the cash balance
	FlowOutflow FlowDirection = -1
)

// CashEventType classifies a cash event
type CashEventType string

const (
	CashEventTypePayout            CashEventType = "PAYOUT"
	CashEventTypeWholesaleReceivable CashEventType = "WHOLESALE_RECEIVABLE"
	CashEventTypeOtherInflow       CashEventType = "OTHER_INFLOW"
	CashEventTypeSupplierPayment   CashEventType = "SUPPLIER_PAYMENT"
	CashEventTypeOperatingExpense  CashEventType = "OPERATING_EXPENSE"
	CashEventTypeAdPlatformInvoice CashEventType = "AD_PLATFORM_INVOICE"
	CashEventTypeOtherOutflow      CashEventType = "OTHER_OUTFLOW"
)

// IsValid checks if the type is a valid CashEventType
func (t CashEventType) IsValid() bool {
	switch t {
	case CashEventTypePayout, CashEventTypeWholesaleReceivable, CashEventTypeOtherInflow,
		CashEventTypeSupplierPayment, CashEventTypeOperatingExpense,
		CashEventTypeAdPlatformInvoice, CashEventTypeOtherOutflow:
		return true
	}
	return false
}

// String returns the string representation of CashEventType
func (t CashEventType) String() string {
	return string(t)
}

// Direction returns the flow direction implied by the event type
func (t CashEventType) Direction() FlowDirection {
	switch t {
	case CashEventTypePayout, CashEventTypeWholesaleReceivable, CashEventTypeOtherInflow:
		return FlowInflow
	}
	return FlowOutflow
}

// AllCashEventTypes returns all valid cash event types
func AllCashEventTypes() []CashEventType {
	return []CashEventType{
		CashEventTypePayout,
		CashEventTypeWholesaleReceivable,
		CashEventTypeOtherInflow,
		CashEventTypeSupplierPayment,
		CashEventTypeOperatingExpense,
		CashEventTypeAdPlatformInvoice,
		CashEventTypeOtherOutflow,
	}
}

// CashEventStatus tracks how firm an event is
type CashEventStatus string

const (
	CashEventStatusForecast  CashEventStatus = "FORECAST"
	CashEventStatusConfirmed CashEventStatus = "CONFIRMED"
	CashEventStatusPaid      CashEventStatus = "PAID"
	CashEventStatusCancelled CashEventStatus = "CANCELLED"
)

// IsValid checks if the status is a valid CashEventStatus
func (s CashEventStatus) IsValid() bool {
	switch s {
	case CashEventStatusForecast, CashEventStatusConfirmed, CashEventStatusPaid, CashEventStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of CashEventStatus
func (s CashEventStatus) String() string {
	return string(s)
}

// CashEvent is one dated, signed future cash movement. Forecast events are
// derived, disposable artifacts: they are regenerated in full on every
// projection run and never stored as ground truth. Confirmed or paid
// events originate externally and are merged in, not generated.
type CashEvent struct {
	ID          uuid.UUID       `json:"id"`
	Brand       *shared.Brand   `json:"brand,omitempty"` // nil = cross-brand
	Date        time.Time       `json:"date"`
	Type        CashEventType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"` // positive = inflow
	Probability int             `json:"probability"`
	Status      CashEventStatus `json:"status"`
	Recurring   bool            `json:"recurring"`
	Note        string          `json:"note,omitempty"`
}

// NewForecastEvent builds a forecast-status event, forcing the amount sign
// to match the direction implied by the type and clamping probability to
// [0, 100]. Generators always go through here so the sign invariant cannot
// drift.
func NewForecastEvent(brand *shared.Brand, date time.Time, eventType CashEventType, amount decimal.Decimal, probability int, recurring bool, note string) CashEvent {
	magnitude := amount.Abs()
	if eventType.Direction() == FlowOutflow {
		magnitude = magnitude.Neg()
	}
	if probability < 0 {
		probability = 0
	}
	if probability > 100 {
		probability = 100
	}
	return CashEvent{
		ID:          uuid.New(),
		Brand:       brand,
		Date:        date,
		Type:        eventType,
		Amount:      magnitude,
		Probability: probability,
		Status:      CashEventStatusForecast,
		Recurring:   recurring,
		Note:        note,
	}
}

// NaturalKey returns a stable identity for an event independent of its
// generated UUID, so regenerated runs can be compared or deduplicated
func (e CashEvent) NaturalKey() string {
	brand := ""
	if e.Brand != nil {
		brand = e.Brand.String()
	}
	return fmt.Sprintf("%s|%s|%s|%s", brand, e.Type, e.Date.Format(time.DateOnly), e.Amount.StringFixed(2))
}

// IsInflow reports whether the event increases the balance
func (e CashEvent) IsInflow() bool {
	return e.Amount.IsPositive()
}

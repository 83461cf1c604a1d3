package forecast

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/shared"
)

// ExpenseFrequency is the recurrence cadence of an operating expense
type ExpenseFrequency string

const (
	ExpenseFrequencyMonthly   ExpenseFrequency = "MONTHLY"
	ExpenseFrequencyQuarterly ExpenseFrequency = "QUARTERLY"
	ExpenseFrequencyAnnual    ExpenseFrequency = "ANNUAL"
	ExpenseFrequencyOneTime   ExpenseFrequency = "ONE_TIME"
)

// IsValid checks if the frequency is a valid ExpenseFrequency
func (f ExpenseFrequency) IsValid() bool {
	switch f {
	case ExpenseFrequencyMonthly, ExpenseFrequencyQuarterly, ExpenseFrequencyAnnual, ExpenseFrequencyOneTime:
		return true
	}
	return false
}

// String returns the string representation of ExpenseFrequency
func (f ExpenseFrequency) String() string {
	return string(f)
}

// MonthPeriod returns the recurrence period in months, 0 for one-time
func (f ExpenseFrequency) MonthPeriod() int {
	switch f {
	case ExpenseFrequencyMonthly:
		return 1
	case ExpenseFrequencyQuarterly:
		return 3
	case ExpenseFrequencyAnnual:
		return 12
	}
	return 0
}

// ExpenseTemplate describes a recurring or one-off operating expense. The
// generator only reads templates, it never mutates them.
type ExpenseTemplate struct {
	shared.BrandEntity
	Name       string           `json:"name"`
	Category   string           `json:"category"`
	Amount     decimal.Decimal  `json:"amount"`
	Frequency  ExpenseFrequency `json:"frequency"`
	PaymentDay int              `json:"payment_day"` // 0 = infer from start date
	StartDate  time.Time        `json:"start_date"`
	EndDate    *time.Time       `json:"end_date,omitempty"`
}

// EffectivePaymentDay returns the configured payment day, falling back to
// the start date's day of month when none is set
func (t ExpenseTemplate) EffectivePaymentDay() int {
	if t.PaymentDay >= 1 && t.PaymentDay <= 31 {
		return t.PaymentDay
	}
	return t.StartDate.Day()
}

// ActiveOn reports whether the template's validity window covers t
func (t ExpenseTemplate) ActiveOn(day time.Time) bool {
	if day.Before(t.StartDate) {
		return false
	}
	if t.EndDate != nil && day.After(*t.EndDate) {
		return false
	}
	return true
}

// ObligationWorkflowStatus is the procurement workflow state of a purchase
// order obligation
type ObligationWorkflowStatus string

const (
	ObligationWorkflowDraft     ObligationWorkflowStatus = "DRAFT"
	ObligationWorkflowConfirmed ObligationWorkflowStatus = "CONFIRMED"
	ObligationWorkflowInTransit ObligationWorkflowStatus = "IN_TRANSIT"
	ObligationWorkflowReceived  ObligationWorkflowStatus = "RECEIVED"
	ObligationWorkflowCancelled ObligationWorkflowStatus = "CANCELLED"
)

// String returns the string representation of ObligationWorkflowStatus
func (s ObligationWorkflowStatus) String() string {
	return string(s)
}

// InFlight reports whether the obligation still leads to a payment:
// confirmed, in transit, or received but not yet settled
func (s ObligationWorkflowStatus) InFlight() bool {
	switch s {
	case ObligationWorkflowConfirmed, ObligationWorkflowInTransit, ObligationWorkflowReceived:
		return true
	}
	return false
}

// ObligationPaymentStatus tracks how much of an obligation has been paid
type ObligationPaymentStatus string

const (
	ObligationPaymentUnpaid  ObligationPaymentStatus = "UNPAID"
	ObligationPaymentPartial ObligationPaymentStatus = "PARTIAL"
	ObligationPaymentPaid    ObligationPaymentStatus = "PAID"
)

// String returns the string representation of ObligationPaymentStatus
func (s ObligationPaymentStatus) String() string {
	return string(s)
}

// PurchaseObligation is a supplier payment obligation derived from a
// purchase order. Read-only input to the generator.
type PurchaseObligation struct {
	shared.BrandEntity
	SupplierName   string                   `json:"supplier_name"`
	TotalAmount    decimal.Decimal          `json:"total_amount"`
	DueDate        *time.Time               `json:"due_date,omitempty"`
	PaymentStatus  ObligationPaymentStatus  `json:"payment_status"`
	WorkflowStatus ObligationWorkflowStatus `json:"workflow_status"`
}

// ExpenseTemplateRepository reads active expense templates
type ExpenseTemplateRepository interface {
	FindActive(ctx context.Context, brand shared.Brand) ([]ExpenseTemplate, error)
}

// ObligationRepository reads purchase obligations
type ObligationRepository interface {
	FindOpen(ctx context.Context, brand shared.Brand) ([]PurchaseObligation, error)
}

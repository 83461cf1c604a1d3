package forecast

import (
	"fmt"
)

// Probability assigned to obligation payments by workflow confidence
const (
	obligationConfirmedProbability = 100
	obligationDefaultProbability   = 90
)

// obligationEvents emits one outflow per in-flight, unpaid purchase
// obligation, at its due date or a fixed default lead from today when no
// due date is recorded
func (g *Generator) obligationEvents(obligations []PurchaseObligation) []CashEvent {
	var events []CashEvent
	horizonEnd := g.config.HorizonEnd()

	for _, obligation := range obligations {
		if !obligation.WorkflowStatus.InFlight() {
			continue
		}
		if obligation.PaymentStatus == ObligationPaymentPaid {
			continue
		}

		dueDate := g.config.Today.AddDate(0, 0, g.config.ObligationLeadDays)
		if obligation.DueDate != nil {
			dueDate = *obligation.DueDate
		}
		if dueDate.Before(g.config.Today) || dueDate.After(horizonEnd) {
			continue
		}

		probability := obligationDefaultProbability
		if obligation.WorkflowStatus == ObligationWorkflowConfirmed {
			probability = obligationConfirmedProbability
		}

		note := fmt.Sprintf("PO payment to %s", obligation.SupplierName)
		events = append(events, NewForecastEvent(
			&obligation.Brand, dueDate, CashEventTypeSupplierPayment,
			obligation.TotalAmount, probability, false, note,
		))
	}
	return events
}

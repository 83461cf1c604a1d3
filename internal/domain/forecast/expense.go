package forecast

import (
	"fmt"
)

// expenseEvents expands expense templates into committed outflows across
// the horizon. One-time templates emit a single event at their start date;
// recurring templates walk the recurrence schedule.
func (g *Generator) expenseEvents(templates []ExpenseTemplate) []CashEvent {
	var events []CashEvent
	horizonEnd := g.config.HorizonEnd()

	for _, template := range templates {
		if template.Frequency == ExpenseFrequencyOneTime {
			date := template.StartDate
			if date.Before(g.config.Today) || date.After(horizonEnd) {
				continue
			}
			events = append(events, NewForecastEvent(
				&template.Brand, date, CashEventTypeOperatingExpense,
				template.Amount, 100, false, template.Name,
			))
			continue
		}

		schedule := RecurrenceSchedule{
			Today:        g.config.Today,
			HorizonEnd:   horizonEnd,
			PeriodMonths: template.Frequency.MonthPeriod(),
			AnchorDay:    template.EffectivePaymentDay(),
		}
		for _, date := range schedule.Dates() {
			if !template.ActiveOn(date) {
				continue
			}
			note := fmt.Sprintf("%s (%s)", template.Name, template.Frequency)
			events = append(events, NewForecastEvent(
				&template.Brand, date, CashEventTypeOperatingExpense,
				template.Amount, 100, true, note,
			))
		}
	}
	return events
}

package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/shared/valueobject"
)

// RiskClass is the qualitative rating of a projection
type RiskClass string

const (
	RiskLow    RiskClass = "LOW"
	RiskMedium RiskClass = "MEDIUM"
	RiskHigh   RiskClass = "HIGH"
)

// String returns the string representation of RiskClass
func (r RiskClass) String() string {
	return string(r)
}

// ScenarioMultipliers scales event amounts for one scenario. Inflows are
// multiplied by InflowFactor, outflows by OutflowFactor.
type ScenarioMultipliers struct {
	InflowFactor  decimal.Decimal `json:"inflow_factor"`
	OutflowFactor decimal.Decimal `json:"outflow_factor"`
}

// Apply scales a signed event amount by the scenario's factors
func (m ScenarioMultipliers) Apply(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return amount.Mul(m.OutflowFactor)
	}
	return amount.Mul(m.InflowFactor)
}

// ProjectorConfig carries the three scenario profiles and the step width
type ProjectorConfig struct {
	Optimistic  ScenarioMultipliers
	Baseline    ScenarioMultipliers
	Pessimistic ScenarioMultipliers
	StepDays    int
}

// DefaultProjectorConfig returns the standard profiles: optimistic scales
// inflows up and outflows down, pessimistic the reverse, baseline 1x, with
// weekly projection steps.
func DefaultProjectorConfig() ProjectorConfig {
	one := decimal.NewFromInt(1)
	return ProjectorConfig{
		Optimistic: ScenarioMultipliers{
			InflowFactor:  decimal.NewFromFloat(1.10),
			OutflowFactor: decimal.NewFromFloat(0.95),
		},
		Baseline: ScenarioMultipliers{InflowFactor: one, OutflowFactor: one},
		Pessimistic: ScenarioMultipliers{
			InflowFactor:  decimal.NewFromFloat(0.85),
			OutflowFactor: decimal.NewFromFloat(1.10),
		},
		StepDays: 7,
	}
}

// ProjectionPoint is one step of the balance walk with all three running
// balances
type ProjectionPoint struct {
	Date        time.Time       `json:"date"`
	Optimistic  decimal.Decimal `json:"optimistic"`
	Baseline    decimal.Decimal `json:"baseline"`
	Pessimistic decimal.Decimal `json:"pessimistic"`
}

// Projection is the complete result of one scenario walk. It is a
// transient, recomputable artifact and is never written back as ground
// truth.
type Projection struct {
	StartingBalance decimal.Decimal   `json:"starting_balance"`
	Points          []ProjectionPoint `json:"points"`
	EndOptimistic   decimal.Decimal   `json:"end_optimistic"`
	EndBaseline     decimal.Decimal   `json:"end_baseline"`
	EndPessimistic  decimal.Decimal   `json:"end_pessimistic"`
	Risk            RiskClass         `json:"risk"`
	Recommendation  string            `json:"recommendation"`
}

// Project walks the event stream from today through the horizon in fixed
// steps, accumulating each scenario's running balance. Cancelled events
// are ignored; every other event contributes its multiplier-scaled amount
// when its date falls due.
func Project(startingBalance decimal.Decimal, events []CashEvent, today, horizonEnd time.Time, config ProjectorConfig) Projection {
	stepDays := config.StepDays
	if stepDays <= 0 {
		stepDays = 7
	}

	sorted := make([]CashEvent, 0, len(events))
	for _, event := range events {
		if event.Status == CashEventStatusCancelled {
			continue
		}
		sorted = append(sorted, event)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	projection := Projection{StartingBalance: startingBalance}
	optimistic, baseline, pessimistic := startingBalance, startingBalance, startingBalance
	next := 0

	lowestBaseline := startingBalance
	lowestBaselineAt := today
	baselineNegative := false
	pessimisticNegative := false

	for stepEnd := today.AddDate(0, 0, stepDays); ; stepEnd = stepEnd.AddDate(0, 0, stepDays) {
		if stepEnd.After(horizonEnd) {
			stepEnd = horizonEnd
		}
		for next < len(sorted) && !sorted[next].Date.After(stepEnd) {
			event := sorted[next]
			optimistic = optimistic.Add(config.Optimistic.Apply(event.Amount))
			baseline = baseline.Add(config.Baseline.Apply(event.Amount))
			pessimistic = pessimistic.Add(config.Pessimistic.Apply(event.Amount))
			next++
		}

		projection.Points = append(projection.Points, ProjectionPoint{
			Date:        stepEnd,
			Optimistic:  optimistic,
			Baseline:    baseline,
			Pessimistic: pessimistic,
		})

		if baseline.IsNegative() {
			baselineNegative = true
		}
		if pessimistic.IsNegative() {
			pessimisticNegative = true
		}
		if baseline.LessThan(lowestBaseline) {
			lowestBaseline = baseline
			lowestBaselineAt = stepEnd
		}

		if !stepEnd.Before(horizonEnd) {
			break
		}
	}

	projection.EndOptimistic = optimistic
	projection.EndBaseline = baseline
	projection.EndPessimistic = pessimistic
	projection.Risk = classifyRisk(baselineNegative, pessimisticNegative)
	projection.Recommendation = recommend(projection.Risk, lowestBaseline, lowestBaselineAt)
	return projection
}

// classifyRisk rates the walk: high when the baseline itself goes
// negative, medium when only the pessimistic trajectory does, low
// otherwise
func classifyRisk(baselineNegative, pessimisticNegative bool) RiskClass {
	switch {
	case baselineNegative:
		return RiskHigh
	case pessimisticNegative:
		return RiskMedium
	default:
		return RiskLow
	}
}

func recommend(risk RiskClass, lowestBaseline decimal.Decimal, lowestAt time.Time) string {
	lowest := valueobject.NewGBP(lowestBaseline)
	when := lowestAt.Format("2 Jan 2006")
	switch risk {
	case RiskHigh:
		return fmt.Sprintf(
			"Baseline balance is projected to fall to %s around %s. Defer discretionary spend, chase receivables, or arrange short-term financing before that date.",
			lowest, when,
		)
	case RiskMedium:
		return fmt.Sprintf(
			"Cash stays positive in the baseline but the pessimistic case dips below zero; the tightest point is %s around %s. Keep a buffer and review committed outflows.",
			lowest, when,
		)
	default:
		return fmt.Sprintf(
			"All scenarios stay positive across the horizon; the lowest baseline point is %s around %s. No action needed.",
			lowest, when,
		)
	}
}

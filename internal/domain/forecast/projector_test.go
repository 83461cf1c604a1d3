package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard/backend/internal/domain/shared"
)

func forecastEvent(brand shared.Brand, date time.Time, eventType CashEventType, amount int64) CashEvent {
	return NewForecastEvent(&brand, date, eventType, decimal.NewFromInt(amount), 100, false, "")
}

func TestProject(t *testing.T) {
	brand := shared.Brand("acme")
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	horizonEnd := today.AddDate(0, 0, 28)
	config := DefaultProjectorConfig()

	t.Run("baseline walk accumulates signed amounts", func(t *testing.T) {
		events := []CashEvent{
			forecastEvent(brand, today.AddDate(0, 0, 3), CashEventTypePayout, 1000),
			forecastEvent(brand, today.AddDate(0, 0, 10), CashEventTypeOperatingExpense, 400),
		}
		projection := Project(decimal.NewFromInt(500), events, today, horizonEnd, config)

		require.Len(t, projection.Points, 4)
		assert.True(t, projection.Points[0].Baseline.Equal(decimal.NewFromInt(1500)))
		assert.True(t, projection.Points[1].Baseline.Equal(decimal.NewFromInt(1100)))
		assert.True(t, projection.EndBaseline.Equal(decimal.NewFromInt(1100)))
	})

	t.Run("scenario multipliers split the trajectories", func(t *testing.T) {
		events := []CashEvent{
			forecastEvent(brand, today.AddDate(0, 0, 5), CashEventTypePayout, 1000),
			forecastEvent(brand, today.AddDate(0, 0, 5), CashEventTypeSupplierPayment, 200),
		}
		projection := Project(decimal.Zero, events, today, horizonEnd, config)

		// optimistic 1000*1.10 - 200*0.95 = 910
		// pessimistic 1000*0.85 - 200*1.10 = 630
		assert.True(t, projection.EndOptimistic.Equal(decimal.NewFromInt(910)), "optimistic %s", projection.EndOptimistic)
		assert.True(t, projection.EndBaseline.Equal(decimal.NewFromInt(800)))
		assert.True(t, projection.EndPessimistic.Equal(decimal.NewFromInt(630)), "pessimistic %s", projection.EndPessimistic)
	})

	t.Run("risk is medium when only the pessimistic case goes negative", func(t *testing.T) {
		// Outflow 95 against a 100 balance: baseline stays at 5, the
		// pessimistic walk lands at 100 - 104.50
		events := []CashEvent{
			forecastEvent(brand, today.AddDate(0, 0, 2), CashEventTypeOperatingExpense, 95),
		}
		projection := Project(decimal.NewFromInt(100), events, today, horizonEnd, config)

		assert.Equal(t, RiskMedium, projection.Risk)
		assert.True(t, projection.EndBaseline.IsPositive())
		assert.True(t, projection.EndPessimistic.IsNegative())
		assert.Contains(t, projection.Recommendation, "pessimistic")
	})

	t.Run("risk is high when the baseline dips below zero", func(t *testing.T) {
		events := []CashEvent{
			forecastEvent(brand, today.AddDate(0, 0, 2), CashEventTypeSupplierPayment, 900),
			forecastEvent(brand, today.AddDate(0, 0, 20), CashEventTypePayout, 2000),
		}
		projection := Project(decimal.NewFromInt(500), events, today, horizonEnd, config)

		// a mid-horizon dip counts even though the end balance recovers
		assert.Equal(t, RiskHigh, projection.Risk)
		assert.True(t, projection.EndBaseline.IsPositive())
		assert.Contains(t, projection.Recommendation, "-400.00")
	})

	t.Run("risk is low when every scenario stays positive", func(t *testing.T) {
		events := []CashEvent{
			forecastEvent(brand, today.AddDate(0, 0, 7), CashEventTypePayout, 300),
		}
		projection := Project(decimal.NewFromInt(1000), events, today, horizonEnd, config)

		assert.Equal(t, RiskLow, projection.Risk)
		assert.Contains(t, projection.Recommendation, "No action needed")
	})

	t.Run("cancelled events are excluded from the walk", func(t *testing.T) {
		cancelled := forecastEvent(brand, today.AddDate(0, 0, 2), CashEventTypeSupplierPayment, 5000)
		cancelled.Status = CashEventStatusCancelled
		projection := Project(decimal.NewFromInt(100), []CashEvent{cancelled}, today, horizonEnd, config)

		assert.Equal(t, RiskLow, projection.Risk)
		assert.True(t, projection.EndBaseline.Equal(decimal.NewFromInt(100)))
	})

	t.Run("final step clamps to the horizon end", func(t *testing.T) {
		oddHorizon := today.AddDate(0, 0, 17)
		projection := Project(decimal.Zero, nil, today, oddHorizon, config)

		require.Len(t, projection.Points, 3)
		assert.Equal(t, today.AddDate(0, 0, 7), projection.Points[0].Date)
		assert.Equal(t, today.AddDate(0, 0, 14), projection.Points[1].Date)
		assert.Equal(t, oddHorizon, projection.Points[2].Date)
	})

	t.Run("zero step width falls back to weekly", func(t *testing.T) {
		projection := Project(decimal.Zero, nil, today, today.AddDate(0, 0, 14), ProjectorConfig{
			Optimistic:  config.Optimistic,
			Baseline:    config.Baseline,
			Pessimistic: config.Pessimistic,
		})
		require.Len(t, projection.Points, 2)
	})
}

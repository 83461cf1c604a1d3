package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
)

type stubTxnRepo struct {
	transactions []finance.ChannelTransaction
	err          error
}

func (r *stubTxnRepo) FindRange(_ context.Context, _ shared.Brand, _ finance.DateRange) ([]finance.ChannelTransaction, error) {
	return r.transactions, r.err
}

func (r *stubTxnRepo) FindUnreconciledWholesale(_ context.Context, _ shared.Brand) ([]finance.ChannelTransaction, error) {
	return nil, nil
}

type stubShipmentRepo struct{ shipments []finance.ShipmentRecord }

func (r *stubShipmentRepo) FindRange(_ context.Context, _ shared.Brand, _ finance.DateRange) ([]finance.ShipmentRecord, error) {
	return r.shipments, nil
}

type stubAdSpendRepo struct{ entries []finance.AdSpendRecord }

func (r *stubAdSpendRepo) FindRange(_ context.Context, _ shared.Brand, _ finance.DateRange) ([]finance.AdSpendRecord, error) {
	return r.entries, nil
}

type stubWholesaleRepo struct{ entries []finance.WholesaleRevenueRecord }

func (r *stubWholesaleRepo) FindRange(_ context.Context, _ shared.Brand, _ finance.DateRange) ([]finance.WholesaleRevenueRecord, error) {
	return r.entries, nil
}

type stubRateRepo struct {
	rates *finance.RateConfig
	err   error
}

func (r *stubRateRepo) FindByBrand(_ context.Context, _ shared.Brand) (*finance.RateConfig, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rates, nil
}

// recordingSink captures upsert batches and can fail selected calls
type recordingSink struct {
	batches  [][]*finance.DailyFinancialRecord
	failCall int // 1-based call number to fail, 0 = never
	calls    int
}

func (r *recordingSink) UpsertBatch(_ context.Context, records []*finance.DailyFinancialRecord) error {
	r.calls++
	if r.failCall == r.calls {
		return errors.New("connection reset")
	}
	r.batches = append(r.batches, records)
	return nil
}

func (r *recordingSink) FindRange(_ context.Context, _ shared.Brand, _ finance.DateRange) ([]*finance.DailyFinancialRecord, error) {
	return nil, nil
}

func dailyTransactions(brand shared.Brand, start time.Time, days int) []finance.ChannelTransaction {
	txns := make([]finance.ChannelTransaction, 0, days)
	for i := 0; i < days; i++ {
		txns = append(txns, finance.ChannelTransaction{
			BrandEntity: shared.NewBrandEntity(brand),
			Channel:     finance.SalesChannelShopify,
			OccurredAt:  start.AddDate(0, 0, i),
			Subtotal:    decimal.NewFromInt(100),
			Total:       decimal.NewFromInt(100),
			Currency:    "GBP",
		})
	}
	return txns
}

func newTestService(txns []finance.ChannelTransaction, sink *recordingSink, batchSize int) *AggregationService {
	return NewAggregationService(
		&stubTxnRepo{transactions: txns},
		&stubShipmentRepo{},
		&stubAdSpendRepo{},
		&stubWholesaleRepo{},
		&stubRateRepo{err: shared.ErrNotFound},
		sink,
		batchSize,
		zap.NewNop(),
	)
}

func TestAggregationServiceRecomputeRange(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("computes and writes one record per active date", func(t *testing.T) {
		sink := &recordingSink{}
		service := newTestService(dailyTransactions("acme", start, 5), sink, 100)

		result, err := service.RecomputeRange(ctx, "acme", start, start.AddDate(0, 0, 9))

		require.NoError(t, err)
		assert.Equal(t, 5, result.DatesComputed)
		assert.Equal(t, 5, result.RecordsWritten)
		assert.Equal(t, 0, result.BatchesFailed)
		require.Len(t, sink.batches, 1)

		// waterfall ran with default rates before the write
		first := sink.batches[0][0]
		assert.True(t, first.NetRevenue.Equal(decimal.NewFromInt(100)))
		assert.True(t, first.COGS.Equal(decimal.NewFromInt(30)))
	})

	t.Run("splits writes into bounded batches", func(t *testing.T) {
		sink := &recordingSink{}
		service := newTestService(dailyTransactions("acme", start, 250), sink, 100)

		result, err := service.RecomputeRange(ctx, "acme", start, start.AddDate(0, 0, 249))

		require.NoError(t, err)
		assert.Equal(t, 250, result.RecordsWritten)
		require.Len(t, sink.batches, 3)
		assert.Len(t, sink.batches[0], 100)
		assert.Len(t, sink.batches[1], 100)
		assert.Len(t, sink.batches[2], 50)
	})

	t.Run("a failed batch is reported without blocking the rest", func(t *testing.T) {
		sink := &recordingSink{failCall: 2}
		service := newTestService(dailyTransactions("acme", start, 250), sink, 100)

		result, err := service.RecomputeRange(ctx, "acme", start, start.AddDate(0, 0, 249))

		require.NoError(t, err)
		assert.Equal(t, 250, result.DatesComputed)
		assert.Equal(t, 150, result.RecordsWritten)
		assert.Equal(t, 1, result.BatchesFailed)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "connection reset")
		// the two completed batches stay written
		require.Len(t, sink.batches, 2)
	})

	t.Run("rejects an empty brand", func(t *testing.T) {
		service := newTestService(nil, &recordingSink{}, 100)
		_, err := service.RecomputeRange(ctx, "  ", start, start)
		assert.ErrorIs(t, err, shared.ErrInvalidBrand)
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		service := newTestService(nil, &recordingSink{}, 100)
		_, err := service.RecomputeRange(ctx, "acme", start.AddDate(0, 0, 5), start)
		assert.ErrorIs(t, err, shared.ErrInvalidRange)
	})

	t.Run("surfaces input load failures", func(t *testing.T) {
		service := NewAggregationService(
			&stubTxnRepo{err: errors.New("timeout")},
			&stubShipmentRepo{},
			&stubAdSpendRepo{},
			&stubWholesaleRepo{},
			&stubRateRepo{err: shared.ErrNotFound},
			&recordingSink{},
			100,
			zap.NewNop(),
		)
		_, err := service.RecomputeRange(ctx, "acme", start, start)
		assert.ErrorContains(t, err, "load transactions")
	})

	t.Run("empty input writes nothing", func(t *testing.T) {
		sink := &recordingSink{}
		service := newTestService(nil, sink, 100)

		result, err := service.RecomputeRange(ctx, "acme", start, start.AddDate(0, 0, 9))

		require.NoError(t, err)
		assert.Equal(t, 0, result.DatesComputed)
		assert.Empty(t, sink.batches)
	})
}

package reconcile

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
	wholesale []finance.ChannelTransaction
	err       error
}

func (r *stubTxnRepo) FindRange(_ context.Context, _ shared.Brand, _ finance.DateRange) ([]finance.ChannelTransaction, error) {
	return nil, nil
}

func (r *stubTxnRepo) FindUnreconciledWholesale(_ context.Context, _ shared.Brand) ([]finance.ChannelTransaction, error) {
	return r.wholesale, r.err
}

type stubInvoiceRepo struct {
	invoices []finance.InvoiceRecord
	err      error
}

func (r *stubInvoiceRepo) FindUnlinked(_ context.Context, _ shared.Brand) ([]finance.InvoiceRecord, error) {
	return r.invoices, r.err
}

var suggestDay = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func openTxn(amount string, counterparty string) finance.ChannelTransaction {
	return finance.ChannelTransaction{
		BrandEntity:      shared.NewBrandEntity("acme"),
		Channel:          finance.SalesChannelWholesale,
		OccurredAt:       suggestDay,
		Total:            decimal.RequireFromString(amount),
		CounterpartyName: counterparty,
	}
}

func openInvoice(amount string, counterparty string) finance.InvoiceRecord {
	return finance.InvoiceRecord{
		BrandEntity:      shared.NewBrandEntity("acme"),
		Amount:           decimal.RequireFromString(amount),
		IssuedAt:         suggestDay,
		CounterpartyName: counterparty,
	}
}

func TestReconciliationServiceSuggest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns best matches plus the full pool", func(t *testing.T) {
		service := NewReconciliationService(
			&stubTxnRepo{wholesale: []finance.ChannelTransaction{
				openTxn("500.00", "Nordic Interiors AB"),
				openTxn("120.00", "Oak & Stone"),
			}},
			&stubInvoiceRepo{invoices: []finance.InvoiceRecord{
				openInvoice("500.00", "Nordic Interiors AB"),
				openInvoice("120.00", "Oak & Stone"),
			}},
			zap.NewNop(),
		)

		result, err := service.Suggest(ctx, "acme", 20)

		require.NoError(t, err)
		require.Len(t, result.BestMatches, 2)
		for _, match := range result.BestMatches {
			assert.Equal(t, 100, match.Confidence)
		}
		assert.GreaterOrEqual(t, len(result.Candidates), len(result.BestMatches))
	})

	t.Run("threshold drops weak pairings silently", func(t *testing.T) {
		service := NewReconciliationService(
			&stubTxnRepo{wholesale: []finance.ChannelTransaction{
				openTxn("500.00", "Nordic Interiors AB"),
			}},
			&stubInvoiceRepo{invoices: []finance.InvoiceRecord{
				openInvoice("9999.00", "Unrelated Ltd"),
			}},
			zap.NewNop(),
		)

		result, err := service.Suggest(ctx, "acme", 40)

		require.NoError(t, err)
		assert.Empty(t, result.BestMatches)
		assert.Empty(t, result.Candidates)
	})

	t.Run("rejects an out-of-range threshold", func(t *testing.T) {
		service := NewReconciliationService(&stubTxnRepo{}, &stubInvoiceRepo{}, zap.NewNop())
		_, err := service.Suggest(ctx, "acme", 101)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects an empty brand", func(t *testing.T) {
		service := NewReconciliationService(&stubTxnRepo{}, &stubInvoiceRepo{}, zap.NewNop())
		_, err := service.Suggest(ctx, " ", 50)
		assert.ErrorIs(t, err, shared.ErrInvalidBrand)
	})

	t.Run("surfaces repository failures", func(t *testing.T) {
		service := NewReconciliationService(
			&stubTxnRepo{err: errors.New("timeout")},
			&stubInvoiceRepo{},
			zap.NewNop(),
		)
		_, err := service.Suggest(ctx, "acme", 50)
		assert.ErrorContains(t, err, "load transactions")
	})
}

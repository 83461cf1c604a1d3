package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
)

var reconcileDay = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func wholesaleTxn(brand shared.Brand, amount string, occurredAt time.Time, counterparty string) finance.ChannelTransaction {
	return finance.ChannelTransaction{
		BrandEntity:      shared.NewBrandEntity(brand),
		Channel:          finance.SalesChannelWholesale,
		OccurredAt:       occurredAt,
		Total:            decimal.RequireFromString(amount),
		CounterpartyName: counterparty,
	}
}

func invoice(brand shared.Brand, amount string, issuedAt time.Time, counterparty string) finance.InvoiceRecord {
	return finance.InvoiceRecord{
		BrandEntity:      shared.NewBrandEntity(brand),
		Amount:           decimal.RequireFromString(amount),
		IssuedAt:         issuedAt,
		CounterpartyName: counterparty,
	}
}

func TestMatcherScore(t *testing.T) {
	matcher := NewMatcher()

	t.Run("perfect pairing scores 100", func(t *testing.T) {
		txn := wholesaleTxn("acme", "500.00", reconcileDay, "Nordic Interiors AB")
		inv := invoice("acme", "500.00", reconcileDay, "Nordic Interiors AB")

		candidate := matcher.Score(txn, inv)

		assert.Equal(t, 100, candidate.Confidence)
		require.Len(t, candidate.Reasons, 3)
		assert.Contains(t, candidate.Reasons[0], "amount exact match")
		assert.Contains(t, candidate.Reasons[1], "same day")
		assert.Contains(t, candidate.Reasons[2], "counterparty exact match")
	})

	t.Run("amount bands step down with relative difference", func(t *testing.T) {
		cases := []struct {
			name   string
			amount string
			points int
		}{
			{"exact", "1000.00", 60},
			{"within one percent", "1005.00", 50},
			{"within five percent", "1040.00", 30},
			{"within ten percent", "1080.00", 15},
			{"beyond ten percent", "1200.00", 0},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				txn := wholesaleTxn("acme", "1000.00", reconcileDay, "")
				inv := invoice("acme", tc.amount, reconcileDay.AddDate(0, 0, 40), "")
				// date and name rules cannot fire here
				assert.Equal(t, tc.points, matcher.Score(txn, inv).Confidence)
			})
		}
	})

	t.Run("date bands step down with day distance", func(t *testing.T) {
		cases := []struct {
			name   string
			offset int
			points int
		}{
			{"same day", 0, 25},
			{"three days", 3, 20},
			{"one week", 7, 15},
			{"two weeks", 14, 10},
			{"one month", 30, 5},
			{"beyond a month", 31, 0},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				txn := wholesaleTxn("acme", "1.00", reconcileDay, "")
				inv := invoice("acme", "9999.00", reconcileDay.AddDate(0, 0, tc.offset), "")
				assert.Equal(t, tc.points, matcher.Score(txn, inv).Confidence)
			})
		}
	})

	t.Run("name rule distinguishes exact, containment and shared token", func(t *testing.T) {
		base := wholesaleTxn("acme", "1.00", reconcileDay, "")
		farInvoice := func(counterparty string) finance.InvoiceRecord {
			return invoice("acme", "9999.00", reconcileDay.AddDate(0, 0, 60), counterparty)
		}

		base.CounterpartyName = "  Nordic Interiors AB "
		assert.Equal(t, 15, matcher.Score(base, farInvoice("nordic interiors ab")).Confidence)

		base.CounterpartyName = "Nordic Interiors"
		assert.Equal(t, 10, matcher.Score(base, farInvoice("Nordic Interiors AB")).Confidence)

		base.CounterpartyName = "Interiors of Lund"
		assert.Equal(t, 5, matcher.Score(base, farInvoice("Nordic Interiors AB")).Confidence)

		// "of" is too short to count as a shared token
		base.CounterpartyName = "House of Oak"
		assert.Equal(t, 0, matcher.Score(base, farInvoice("Works of Iron")).Confidence)
	})

	t.Run("brand mismatch demotes but never excludes", func(t *testing.T) {
		txn := wholesaleTxn("acme", "500.00", reconcileDay, "Nordic Interiors AB")
		inv := invoice("other", "500.00", reconcileDay, "Nordic Interiors AB")

		candidate := matcher.Score(txn, inv)

		assert.Equal(t, 60, candidate.Confidence)
		require.Len(t, candidate.Reasons, 4)
		assert.Contains(t, candidate.Reasons[3], "warning: brand mismatch")
	})

	t.Run("penalty floors the score at zero", func(t *testing.T) {
		txn := wholesaleTxn("acme", "1.00", reconcileDay, "")
		inv := invoice("other", "9999.00", reconcileDay.AddDate(0, 0, 60), "")

		assert.Equal(t, 0, matcher.Score(txn, inv).Confidence)
	})
}

func TestMatcherScoreAll(t *testing.T) {
	matcher := NewMatcher()

	t.Run("drops candidates below the minimum confidence", func(t *testing.T) {
		txns := []finance.ChannelTransaction{
			wholesaleTxn("acme", "500.00", reconcileDay, "Nordic Interiors AB"),
		}
		invoices := []finance.InvoiceRecord{
			invoice("acme", "500.00", reconcileDay, "Nordic Interiors AB"),
			invoice("acme", "9999.00", reconcileDay.AddDate(0, 0, 90), "Unrelated Ltd"),
		}

		candidates := matcher.ScoreAll(txns, invoices, 40)

		require.Len(t, candidates, 1)
		assert.Equal(t, 100, candidates[0].Confidence)
	})

	t.Run("sorts by confidence descending", func(t *testing.T) {
		txns := []finance.ChannelTransaction{
			wholesaleTxn("acme", "500.00", reconcileDay, "Nordic Interiors AB"),
		}
		invoices := []finance.InvoiceRecord{
			invoice("acme", "540.00", reconcileDay, "Nordic Interiors AB"),
			invoice("acme", "500.00", reconcileDay, "Nordic Interiors AB"),
		}

		candidates := matcher.ScoreAll(txns, invoices, 0)

		require.Len(t, candidates, 2)
		assert.True(t, candidates[0].Confidence >= candidates[1].Confidence)
		assert.True(t, candidates[0].Invoice.Amount.Equal(decimal.RequireFromString("500.00")))
	})
}

func TestGroupBestMatches(t *testing.T) {
	matcher := NewMatcher()

	txnA := wholesaleTxn("acme", "500.00", reconcileDay, "Nordic Interiors AB")
	txnB := wholesaleTxn("acme", "120.00", reconcileDay, "Oak & Stone")
	invoices := []finance.InvoiceRecord{
		invoice("acme", "500.00", reconcileDay, "Nordic Interiors AB"),
		invoice("acme", "505.00", reconcileDay.AddDate(0, 0, 2), "Nordic Interiors AB"),
		invoice("acme", "120.00", reconcileDay, "Oak & Stone"),
	}

	pool := matcher.ScoreAll([]finance.ChannelTransaction{txnA, txnB}, invoices, 0)
	best := GroupBestMatches(pool)

	require.Len(t, best, 2)
	for _, candidate := range best {
		switch candidate.Transaction.ID {
		case txnA.ID:
			assert.Equal(t, 100, candidate.Confidence)
			assert.True(t, candidate.Invoice.Amount.Equal(decimal.RequireFromString("500.00")))
		case txnB.ID:
			assert.Equal(t, 100, candidate.Confidence)
		default:
			t.Fatalf("unexpected transaction %s", candidate.Transaction.ID)
		}
	}
	// the pool keeps every scored pairing
	assert.Greater(t, len(pool), len(best))
}

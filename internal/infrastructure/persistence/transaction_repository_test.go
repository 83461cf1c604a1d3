package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/finboard/backend/internal/domain/finance"
)

// newMockTransactionRepository creates a TransactionRepository with a mocked SQL connection
func newMockTransactionRepository(t *testing.T) (*TransactionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewTransactionRepository(gormDB), mock, mockDB
}

func TestTransactionRepository_FindRange(t *testing.T) {
	t.Run("filters by brand, exclusion and range", func(t *testing.T) {
		repo, mock, mockDB := newMockTransactionRepository(t)
		defer mockDB.Close()

		dateRange, err := finance.NewDateRange(
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"brand", "channel", "occurred_at", "total", "currency"}).
			AddRow("acme", "shopify", time.Date(2025, 3, 2, 14, 30, 0, 0, time.UTC), decimal.NewFromInt(120), "GBP")

		mock.ExpectQuery(`SELECT \* FROM "channel_transactions" WHERE brand = \$1 AND excluded = \$2 AND occurred_at >= \$3 AND occurred_at < \$4 ORDER BY occurred_at ASC`).
			WithArgs("acme", false, dateRange.From, dateRange.To.AddDate(0, 0, 1)).
			WillReturnRows(rows)

		transactions, err := repo.FindRange(context.Background(), "acme", dateRange)

		assert.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, finance.SalesChannelShopify, transactions[0].Channel)
		assert.True(t, transactions[0].Total.Equal(decimal.NewFromInt(120)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_FindUnreconciledWholesale(t *testing.T) {
	t.Run("returns only open wholesale rows", func(t *testing.T) {
		repo, mock, mockDB := newMockTransactionRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"brand", "channel", "occurred_at", "total", "counterparty_name"}).
			AddRow("acme", "wholesale", time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(1000), "Harrods Ltd")

		mock.ExpectQuery(`SELECT \* FROM "channel_transactions" WHERE brand = \$1 AND channel = \$2 AND reconciled = \$3 AND excluded = \$4 ORDER BY occurred_at ASC`).
			WithArgs("acme", "wholesale", false, false).
			WillReturnRows(rows)

		transactions, err := repo.FindUnreconciledWholesale(context.Background(), "acme")

		assert.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, "Harrods Ltd", transactions[0].CounterpartyName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates query errors", func(t *testing.T) {
		repo, mock, mockDB := newMockTransactionRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "channel_transactions"`).
			WillReturnError(sql.ErrConnDone)

		transactions, err := repo.FindUnreconciledWholesale(context.Background(), "acme")

		assert.Error(t, err)
		assert.Nil(t, transactions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

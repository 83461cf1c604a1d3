package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
)

// newMockRateConfigRepository creates a RateConfigRepository with a mocked SQL connection
func newMockRateConfigRepository(t *testing.T) (*RateConfigRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewRateConfigRepository(gormDB), mock, mockDB
}

func TestRateConfigRepository_FindByBrand(t *testing.T) {
	t.Run("finds existing config with channel fees", func(t *testing.T) {
		repo, mock, mockDB := newMockRateConfigRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"brand", "cogs_rate", "pick_pack_rate", "logistics_rate", "channel_fees"}).
			AddRow("acme", "0.32", "0.05", "0.03", `{"shopify":{"variable_rate":"0.029","fixed_per_order":"0.30"}}`)

		mock.ExpectQuery(`SELECT \* FROM "rate_configs" WHERE brand = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("acme", 1).
			WillReturnRows(rows)

		config, err := repo.FindByBrand(context.Background(), "ACME")

		assert.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, shared.Brand("acme"), config.Brand)
		assert.Equal(t, "0.32", config.COGSRate.String())
		require.Contains(t, config.ChannelFees, finance.SalesChannelShopify)
		assert.Equal(t, "0.029", config.ChannelFees[finance.SalesChannelShopify].VariableRate.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockRateConfigRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "rate_configs" WHERE brand = \$1`).
			WithArgs("ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		config, err := repo.FindByBrand(context.Background(), "ghost")

		assert.Nil(t, config)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopcore/backend/internal/domain/shared"
)

// newMockStockRepository creates a GormStockRepository with a mocked SQL connection
func newMockStockRepository(t *testing.T) (*GormStockRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormStockRepository(gormDB), mock, mockDB
}

func TestGormStockRepository_AvailableStock(t *testing.T) {
	t.Run("returns the stored quantity", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		rows := sqlmock.NewRows([]string{"available_quantity"}).AddRow(int64(12))

		mock.ExpectQuery(`SELECT "available_quantity" FROM "stock_items" WHERE product_id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		available, err := repo.AvailableStock(context.Background(), productID)

		assert.NoError(t, err)
		assert.Equal(t, int64(12), available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a missing stock record reads as zero", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT "available_quantity" FROM "stock_items" WHERE product_id = \$1`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		available, err := repo.AvailableStock(context.Background(), productID)

		assert.NoError(t, err)
		assert.Zero(t, available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRepository_DecrementStock(t *testing.T) {
	t.Run("decrements when enough stock is available", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "stock_items" SET .* WHERE product_id = \$\d+ AND available_quantity >= \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DecrementStock(context.Background(), productID, 3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails with insufficient stock when the guard rejects", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "stock_items" SET .* WHERE product_id = \$\d+ AND available_quantity >= \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT "available_quantity" FROM "stock_items" WHERE product_id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"available_quantity"}).AddRow(int64(2)))

		err := repo.DecrementStock(context.Background(), productID, 5)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, int64(5), domainErr.Details["requested"])
		assert.Equal(t, int64(2), domainErr.Details["available"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a non-positive quantity without touching the database", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRepository(t)
		defer mockDB.Close()

		err := repo.DecrementStock(context.Background(), uuid.New(), 0)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRepository_RestoreStock(t *testing.T) {
	t.Run("returns quantity to the available stock", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "stock_items" SET .* WHERE product_id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RestoreStock(context.Background(), uuid.New(), 3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails when the stock record does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "stock_items" SET .* WHERE product_id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RestoreStock(context.Background(), uuid.New(), 3)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopcore/backend/internal/domain/order"
	"github.com/shopcore/backend/internal/domain/shared"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormOrderRepository(gormDB), mock, mockDB
}

const testAddressJSON = `{"recipient":"Jane Doe","line1":"1 Main St","city":"Springfield","postal_code":"01101","country":"US"}`

func orderRows(orderID, userID uuid.UUID, orderNumber, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"order_number", "user_id", "shipping_address",
		"payment_method", "payment_transaction_id", "payment_status",
		"coupon_code", "subtotal", "discount_amount", "shipping_price",
		"tax_price", "total_price", "status",
	}).AddRow(
		orderID, time.Now(), time.Now(), 1,
		orderNumber, userID, testAddressJSON,
		"COD", "", "PENDING",
		"", decimal.NewFromInt(20), decimal.Zero, decimal.Zero,
		decimal.Zero, decimal.NewFromInt(20), status,
	)
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("finds an order with its item snapshots", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		userID := uuid.New()
		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows(orderID, userID, "ORD-20260830-0001", "PENDING"))

		itemRows := sqlmock.NewRows([]string{
			"id", "order_id", "product_id", "product_name", "image_url",
			"unit_price", "discount_percent", "quantity", "amount", "created_at",
		}).AddRow(
			uuid.New(), orderID, productID, "Widget", "",
			decimal.NewFromInt(10), decimal.Zero, int64(2), decimal.NewFromInt(20), time.Now(),
		)
		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(itemRows)

		o, err := repo.FindByID(context.Background(), orderID)

		require.NoError(t, err)
		assert.Equal(t, "ORD-20260830-0001", o.OrderNumber)
		assert.Equal(t, userID, o.UserID)
		assert.Equal(t, order.StatusPending, o.Status)
		assert.Equal(t, "Jane Doe", o.ShippingAddress.Recipient())
		require.Len(t, o.Items, 1)
		assert.Equal(t, productID, o.Items[0].ProductID)
		assert.Equal(t, int64(2), o.Items[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for a missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		o, err := repo.FindByID(context.Background(), orderID)

		assert.Nil(t, o)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_CountByStatus(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE status = \$1`).
		WithArgs("PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByStatus(context.Background(), order.StatusPending)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	t.Run("updates when the version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		o := &order.Order{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			OrderNumber:       "ORD-20260830-0001",
			Status:            order.StatusProcessing,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "orders" WHERE id = \$1`).
			WithArgs(o.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
		mock.ExpectExec(`UPDATE "orders" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveWithLock(context.Background(), o)

		assert.NoError(t, err)
		assert.Equal(t, 2, o.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("detects a concurrent modification", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		o := &order.Order{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			OrderNumber:       "ORD-20260830-0001",
			Status:            order.StatusProcessing,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "orders" WHERE id = \$1`).
			WithArgs(o.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), o)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_GenerateOrderNumber(t *testing.T) {
	t.Run("starts at one for the first order of the day", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT "order_number" FROM "orders" WHERE order_number LIKE \$1`).
			WillReturnError(gorm.ErrRecordNotFound)

		number, err := repo.GenerateOrderNumber(context.Background())

		require.NoError(t, err)
		prefix := "ORD-" + time.Now().Format("20060102") + "-"
		assert.Equal(t, prefix+"0001", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments past the highest existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		prefix := "ORD-" + time.Now().Format("20060102") + "-"

		mock.ExpectQuery(`SELECT "order_number" FROM "orders" WHERE order_number LIKE \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"order_number"}).AddRow(prefix + "0007"))

		number, err := repo.GenerateOrderNumber(context.Background())

		require.NoError(t, err)
		assert.Equal(t, prefix+"0008", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

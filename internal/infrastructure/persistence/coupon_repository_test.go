package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopcore/backend/internal/domain/coupon"
	"github.com/shopcore/backend/internal/domain/shared"
)

// newMockCouponRepository creates a GormCouponRepository with a mocked SQL connection
func newMockCouponRepository(t *testing.T) (*GormCouponRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormCouponRepository(gormDB), mock, mockDB
}

func couponRows(id uuid.UUID, code string, usageCount, usageLimit int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"code", "discount_type", "discount_value", "minimum_purchase",
		"expires_at", "is_active", "usage_count", "usage_limit",
	}).AddRow(
		id, time.Now(), time.Now(), 1,
		code, "PERCENTAGE", decimal.NewFromInt(10), decimal.Zero,
		nil, true, usageCount, usageLimit,
	)
}

func TestGormCouponRepository_FindByCode(t *testing.T) {
	t.Run("finds an existing coupon", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		couponID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "coupons" WHERE code = \$1`).
			WithArgs("SUMMER10", 1).
			WillReturnRows(couponRows(couponID, "SUMMER10", 0, 100))

		c, err := repo.FindByCode(context.Background(), "SUMMER10")

		require.NoError(t, err)
		assert.Equal(t, couponID, c.ID)
		assert.Equal(t, "SUMMER10", c.Code)
		assert.Equal(t, coupon.DiscountTypePercentage, c.DiscountType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for an unknown code", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "coupons" WHERE code = \$1`).
			WithArgs("MISSING", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		c, err := repo.FindByCode(context.Background(), "MISSING")

		assert.Nil(t, c)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCouponRepository_IncrementUsage(t *testing.T) {
	t.Run("increments usage under the cap", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "coupons" WHERE code = \$1`).
			WithArgs("SUMMER10").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(`UPDATE "coupons" SET .* WHERE code = \$\d+ AND \(usage_limit = 0 OR usage_count < usage_limit\)`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.IncrementUsage(context.Background(), "SUMMER10")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails when the cap is exhausted", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "coupons" WHERE code = \$1`).
			WithArgs("SUMMER10").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(`UPDATE "coupons" SET .* WHERE code = \$\d+ AND \(usage_limit = 0 OR usage_count < usage_limit\)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.IncrementUsage(context.Background(), "SUMMER10")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "COUPON_USAGE_LIMIT_REACHED", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails with not found for an unknown code", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "coupons" WHERE code = \$1`).
			WithArgs("MISSING").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectRollback()

		err := repo.IncrementUsage(context.Background(), "MISSING")

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/backend/internal/domain/coupon"
	"github.com/shopcore/backend/internal/domain/shared"
)

// MockCouponRepository is a mock implementation of coupon.Repository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindAll(ctx context.Context, filter shared.Filter) ([]coupon.Coupon, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]coupon.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCouponRepository) Save(ctx context.Context, c *coupon.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func newPercentageCoupon(t *testing.T, code string, percent, minimum int64) *coupon.Coupon {
	t.Helper()
	c, err := coupon.NewCoupon(
		code,
		coupon.DiscountTypePercentage,
		decimal.NewFromInt(percent),
		decimal.NewFromInt(minimum),
		nil,
		0,
	)
	require.NoError(t, err)
	return c
}

func TestCouponService_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("prices a percentage coupon against the subtotal", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		c := newPercentageCoupon(t, "SAVE20", 20, 50)
		repo.On("FindByCode", ctx, "SAVE20").Return(c, nil)

		resp, err := service.Validate(ctx, ValidateCouponRequest{
			Code:     "SAVE20",
			Subtotal: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.Equal(t, "SAVE20", resp.Code)
		assert.True(t, resp.DiscountAmount.Equal(decimal.RequireFromString("20.00")))
	})

	t.Run("caps a fixed discount at the subtotal", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		c, err := coupon.NewCoupon("FLAT30", coupon.DiscountTypeFixed, decimal.NewFromInt(30), decimal.Zero, nil, 0)
		require.NoError(t, err)
		repo.On("FindByCode", ctx, "FLAT30").Return(c, nil)

		resp, err := service.Validate(ctx, ValidateCouponRequest{
			Code:     "FLAT30",
			Subtotal: decimal.RequireFromString("19.99"),
		})
		require.NoError(t, err)
		assert.True(t, resp.DiscountAmount.Equal(decimal.RequireFromString("19.99")))
	})

	t.Run("unknown code fails before any eligibility rule", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		repo.On("FindByCode", ctx, "NOPE").Return(nil, shared.ErrNotFound)

		_, err := service.Validate(ctx, ValidateCouponRequest{
			Code:     "NOPE",
			Subtotal: decimal.NewFromInt(100),
		})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "COUPON_NOT_FOUND", domainErr.Code)
	})

	t.Run("inactive coupon is rejected", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		c := newPercentageCoupon(t, "SAVE20", 20, 0)
		c.Deactivate()
		repo.On("FindByCode", ctx, "SAVE20").Return(c, nil)

		_, err := service.Validate(ctx, ValidateCouponRequest{
			Code:     "SAVE20",
			Subtotal: decimal.NewFromInt(100),
		})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "COUPON_INACTIVE", domainErr.Code)
	})

	t.Run("expired coupon is rejected with its expiration", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		expires := time.Now().Add(time.Hour)
		c, err := coupon.NewCoupon("SUMMER", coupon.DiscountTypePercentage, decimal.NewFromInt(10), decimal.Zero, &expires, 0)
		require.NoError(t, err)
		repo.On("FindByCode", ctx, "SUMMER").Return(c, nil)

		service.now = func() time.Time { return expires.Add(time.Minute) }

		_, err = service.Validate(ctx, ValidateCouponRequest{
			Code:     "SUMMER",
			Subtotal: decimal.NewFromInt(100),
		})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "COUPON_EXPIRED", domainErr.Code)
	})

	t.Run("subtotal below the minimum reports the shortfall", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		c := newPercentageCoupon(t, "SAVE20", 20, 50)
		repo.On("FindByCode", ctx, "SAVE20").Return(c, nil)

		_, err := service.Validate(ctx, ValidateCouponRequest{
			Code:     "SAVE20",
			Subtotal: decimal.NewFromInt(40),
		})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "COUPON_MINIMUM_NOT_MET", domainErr.Code)
		assert.Equal(t, "50.00", domainErr.Details["minimum"])
		assert.Equal(t, "10.00", domainErr.Details["shortfall"])
	})

	t.Run("validation does not touch the usage counter", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		c := newPercentageCoupon(t, "SAVE20", 20, 0)
		repo.On("FindByCode", ctx, "SAVE20").Return(c, nil)

		_, err := service.Validate(ctx, ValidateCouponRequest{
			Code:     "SAVE20",
			Subtotal: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCouponService_Commit(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes one use", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		repo.On("IncrementUsage", ctx, "SAVE20").Return(nil)

		require.NoError(t, service.Commit(ctx, "SAVE20"))
		repo.AssertExpectations(t)
	})

	t.Run("propagates an exhausted cap", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		repo.On("IncrementUsage", ctx, "SAVE20").Return(coupon.ErrUsageLimitReached("SAVE20"))

		err := service.Commit(ctx, "SAVE20")
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "COUPON_USAGE_LIMIT_REACHED", domainErr.Code)
	})
}

func TestCouponService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a coupon", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		repo.On("FindByCode", ctx, "WELCOME10").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*coupon.Coupon")).Return(nil)

		resp, err := service.Create(ctx, CreateCouponRequest{
			Code:          "WELCOME10",
			DiscountType:  "PERCENTAGE",
			DiscountValue: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		assert.Equal(t, "WELCOME10", resp.Code)
		assert.True(t, resp.IsActive)
	})

	t.Run("rejects a duplicate code", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		existing := newPercentageCoupon(t, "WELCOME10", 10, 0)
		repo.On("FindByCode", ctx, "WELCOME10").Return(existing, nil)

		_, err := service.Create(ctx, CreateCouponRequest{
			Code:          "WELCOME10",
			DiscountType:  "PERCENTAGE",
			DiscountValue: decimal.NewFromInt(10),
		})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.ErrAlreadyExists.Code, domainErr.Code)
	})

	t.Run("rejects a percentage above 100", func(t *testing.T) {
		repo := new(MockCouponRepository)
		service := NewCouponService(repo)

		repo.On("FindByCode", ctx, "BIG").Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateCouponRequest{
			Code:          "BIG",
			DiscountType:  "PERCENTAGE",
			DiscountValue: decimal.NewFromInt(150),
		})
		require.Error(t, err)
	})
}

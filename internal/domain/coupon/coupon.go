package coupon

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// DiscountType distinguishes percentage from fixed-amount coupons
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// IsValid checks if the type is a known DiscountType
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}

// String returns the string representation of DiscountType
func (t DiscountType) String() string {
	return string(t)
}

var codePattern = regexp.MustCompile(`^[A-Za-z0-9]{3,32}$`)

// Coupon is a redeemable discount code with eligibility rules and a usage
// counter. The counter moves only when an order is durably created, never
// at validation time, so previewing a discount cannot inflate usage.
type Coupon struct {
	shared.BaseAggregateRoot
	Code            string
	DiscountType    DiscountType
	DiscountValue   decimal.Decimal
	MinimumPurchase decimal.Decimal
	ExpiresAt       *time.Time
	IsActive        bool
	UsageCount      int64
	UsageLimit      int64 // 0 means unlimited
}

// NewCoupon creates a new coupon
// The expiration, when set, must lie in the future at creation time
func NewCoupon(code string, discountType DiscountType, discountValue, minimumPurchase decimal.Decimal, expiresAt *time.Time, usageLimit int64) (*Coupon, error) {
	if !codePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_COUPON_CODE", "Coupon code must be 3-32 alphanumeric characters")
	}
	if !discountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Unknown discount type")
	}
	if discountValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Discount value cannot be negative")
	}
	if discountType == DiscountTypePercentage && discountValue.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Percentage discount cannot exceed 100")
	}
	if minimumPurchase.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MINIMUM", "Minimum purchase amount cannot be negative")
	}
	if expiresAt != nil && !expiresAt.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_EXPIRATION", "Expiration must be in the future")
	}
	if usageLimit < 0 {
		return nil, shared.NewDomainError("INVALID_USAGE_LIMIT", "Usage limit cannot be negative")
	}

	return &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		DiscountType:      discountType,
		DiscountValue:     discountValue,
		MinimumPurchase:   minimumPurchase,
		ExpiresAt:         expiresAt,
		IsActive:          true,
		UsageLimit:        usageLimit,
	}, nil
}

// ErrCouponInactive is returned when a deactivated coupon is presented
func ErrCouponInactive(code string) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		"COUPON_INACTIVE",
		"Coupon is not active",
		map[string]any{"code": code},
	)
}

// ErrCouponExpired is returned when a coupon is past its expiration
func ErrCouponExpired(code string, expiredAt time.Time) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		"COUPON_EXPIRED",
		"Coupon has expired",
		map[string]any{"code": code, "expired_at": expiredAt},
	)
}

// ErrMinimumNotMet is returned when the cart subtotal is below the coupon
// threshold; the shortfall is carried for display
func ErrMinimumNotMet(code string, minimum, shortfall decimal.Decimal) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		"COUPON_MINIMUM_NOT_MET",
		"Cart subtotal is below the coupon minimum",
		map[string]any{
			"code":      code,
			"minimum":   minimum.StringFixed(2),
			"shortfall": shortfall.StringFixed(2),
		},
	)
}

// ErrUsageLimitReached is returned when a capped coupon has been fully redeemed
func ErrUsageLimitReached(code string) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		"COUPON_USAGE_LIMIT_REACHED",
		"Coupon usage limit has been reached",
		map[string]any{"code": code},
	)
}

// Redeemable checks eligibility against a cart subtotal at a point in
// time. Checks run in a fixed order: active, expiration, usage limit,
// minimum purchase. Returns nil when the coupon can be applied.
func (c *Coupon) Redeemable(cartSubtotal decimal.Decimal, now time.Time) error {
	if !c.IsActive {
		return ErrCouponInactive(c.Code)
	}
	if c.ExpiresAt != nil && !c.ExpiresAt.After(now) {
		return ErrCouponExpired(c.Code, *c.ExpiresAt)
	}
	if c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit {
		return ErrUsageLimitReached(c.Code)
	}
	if cartSubtotal.LessThan(c.MinimumPurchase) {
		return ErrMinimumNotMet(c.Code, c.MinimumPurchase, c.MinimumPurchase.Sub(cartSubtotal))
	}
	return nil
}

// DiscountFor computes the discount amount for a cart subtotal, rounded
// half-up to two decimal places. Fixed discounts never exceed the
// subtotal, so the payable total cannot go negative.
func (c *Coupon) DiscountFor(cartSubtotal decimal.Decimal) valueobject.Money {
	var amount decimal.Decimal
	switch c.DiscountType {
	case DiscountTypePercentage:
		amount = cartSubtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
	case DiscountTypeFixed:
		amount = decimal.Min(c.DiscountValue, cartSubtotal)
	}
	return valueobject.NewMoneyUSD(amount.Round(2))
}

// Deactivate turns the coupon off; redemption attempts fail afterwards
func (c *Coupon) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// Activate turns the coupon back on
func (c *Coupon) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}

// IsExpired returns true if the coupon is past its expiration
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

// AppliedDiscount is the priced result of a successful validation,
// carried through checkout and committed when the order is created
type AppliedDiscount struct {
	Code   string
	Amount valueobject.Money
}

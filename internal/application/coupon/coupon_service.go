package coupon

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/coupon"
	"github.com/shopcore/backend/internal/domain/shared"
)

// ErrCouponNotFound builds the error returned when a presented code does
// not exist. Checked before any eligibility rule, so an unknown code never
// leaks which rules it would have failed.
func ErrCouponNotFound(code string) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		"COUPON_NOT_FOUND",
		"Coupon code not found",
		map[string]any{"code": code},
	)
}

// CouponService handles coupon validation, redemption and administration.
// Validate prices a coupon without side effects; Commit moves the usage
// counter and runs only when an order is durably created.
type CouponService struct {
	coupons coupon.Repository
	now     func() time.Time
}

// NewCouponService creates a new CouponService
func NewCouponService(coupons coupon.Repository) *CouponService {
	return &CouponService{
		coupons: coupons,
		now:     time.Now,
	}
}

// Validate checks a coupon against a cart subtotal and prices the
// discount. No state changes: validating twice in a row is identical to
// validating once.
func (s *CouponService) Validate(ctx context.Context, req ValidateCouponRequest) (*AppliedDiscountResponse, error) {
	applied, err := s.Price(ctx, req.Code, req.Subtotal)
	if err != nil {
		return nil, err
	}
	return &AppliedDiscountResponse{
		Code:           applied.Code,
		DiscountAmount: applied.Amount.Amount(),
	}, nil
}

// Price resolves and prices a coupon for internal callers such as order
// placement, returning the domain-level applied discount
func (s *CouponService) Price(ctx context.Context, code string, subtotal decimal.Decimal) (*coupon.AppliedDiscount, error) {
	c, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCouponNotFound(code)
		}
		return nil, err
	}

	if err := c.Redeemable(subtotal, s.now()); err != nil {
		return nil, err
	}

	return &coupon.AppliedDiscount{
		Code:   c.Code,
		Amount: c.DiscountFor(subtotal),
	}, nil
}

// Commit consumes one use of a coupon. The underlying increment is a
// single guarded update, so concurrent checkouts cannot overrun the cap.
func (s *CouponService) Commit(ctx context.Context, code string) error {
	err := s.coupons.IncrementUsage(ctx, code)
	if err != nil && isNotFound(err) {
		return ErrCouponNotFound(code)
	}
	return err
}

// Create creates a new coupon
func (s *CouponService) Create(ctx context.Context, req CreateCouponRequest) (*CouponResponse, error) {
	existing, err := s.coupons.FindByCode(ctx, req.Code)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists.WithDetail("code", req.Code)
	}

	minimum := decimal.Zero
	if req.MinimumPurchase != nil {
		minimum = *req.MinimumPurchase
	}

	c, err := coupon.NewCoupon(
		req.Code,
		coupon.DiscountType(req.DiscountType),
		req.DiscountValue,
		minimum,
		req.ExpiresAt,
		req.UsageLimit,
	)
	if err != nil {
		return nil, err
	}

	if err := s.coupons.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCouponResponse(c)
	return &response, nil
}

// Deactivate turns a coupon off
func (s *CouponService) Deactivate(ctx context.Context, id uuid.UUID) (*CouponResponse, error) {
	return s.setActive(ctx, id, false)
}

// Activate turns a coupon back on
func (s *CouponService) Activate(ctx context.Context, id uuid.UUID) (*CouponResponse, error) {
	return s.setActive(ctx, id, true)
}

func (s *CouponService) setActive(ctx context.Context, id uuid.UUID, active bool) (*CouponResponse, error) {
	c, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		c.Activate()
	} else {
		c.Deactivate()
	}

	if err := s.coupons.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCouponResponse(c)
	return &response, nil
}

// List retrieves coupons with filtering and pagination
func (s *CouponService) List(ctx context.Context, filter CouponListFilter) ([]CouponResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Active != nil {
		domainFilter.Filters["is_active"] = *filter.Active
	}

	coupons, err := s.coupons.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.coupons.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCouponResponses(coupons), total, nil
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrNotFound.Code
	}
	return false
}

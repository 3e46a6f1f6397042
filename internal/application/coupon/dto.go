package coupon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/coupon"
)

// CreateCouponRequest represents a request to create a coupon
type CreateCouponRequest struct {
	Code            string           `json:"code" binding:"required,alphanum,min=3,max=32"`
	DiscountType    string           `json:"discount_type" binding:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue   decimal.Decimal  `json:"discount_value" binding:"required"`
	MinimumPurchase *decimal.Decimal `json:"minimum_purchase"`
	ExpiresAt       *time.Time       `json:"expires_at"`
	UsageLimit      int64            `json:"usage_limit" binding:"min=0"`
}

// ValidateCouponRequest represents a request to price a coupon against a
// cart subtotal without consuming a use
type ValidateCouponRequest struct {
	Code     string          `json:"code" binding:"required"`
	Subtotal decimal.Decimal `json:"subtotal" binding:"required"`
}

// CouponListFilter represents filter options for the coupon list
type CouponListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	DiscountType    string          `json:"discount_type"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	MinimumPurchase decimal.Decimal `json:"minimum_purchase"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
	IsActive        bool            `json:"is_active"`
	UsageCount      int64           `json:"usage_count"`
	UsageLimit      int64           `json:"usage_limit"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// AppliedDiscountResponse is the priced outcome of a successful validation
type AppliedDiscountResponse struct {
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// ToCouponResponse converts a domain coupon to a response DTO
func ToCouponResponse(c *coupon.Coupon) CouponResponse {
	return CouponResponse{
		ID:              c.ID,
		Code:            c.Code,
		DiscountType:    c.DiscountType.String(),
		DiscountValue:   c.DiscountValue,
		MinimumPurchase: c.MinimumPurchase,
		ExpiresAt:       c.ExpiresAt,
		IsActive:        c.IsActive,
		UsageCount:      c.UsageCount,
		UsageLimit:      c.UsageLimit,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToCouponResponses converts a slice of domain coupons to response DTOs
func ToCouponResponses(coupons []coupon.Coupon) []CouponResponse {
	responses := make([]CouponResponse, 0, len(coupons))
	for i := range coupons {
		responses = append(responses, ToCouponResponse(&coupons[i]))
	}
	return responses
}

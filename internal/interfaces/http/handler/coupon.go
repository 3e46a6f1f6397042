package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	couponapp "github.com/shopcore/backend/internal/application/coupon"
)

// CouponHandler handles coupon API endpoints
type CouponHandler struct {
	BaseHandler
	couponService *couponapp.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService *couponapp.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// Validate checks a coupon against a subtotal and prices the discount.
// Usage counters are untouched; they move when an order is placed.
func (h *CouponHandler) Validate(c *gin.Context) {
	var req couponapp.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.couponService.Validate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Create creates a new coupon. Admin only.
func (h *CouponHandler) Create(c *gin.Context) {
	var req couponapp.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.couponService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns coupons with filtering and pagination. Admin only.
func (h *CouponHandler) List(c *gin.Context) {
	var filter couponapp.CouponListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	coupons, total, err := h.couponService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, coupons, total, filter.Page, filter.PageSize)
}

// Activate re-enables a coupon. Admin only.
func (h *CouponHandler) Activate(c *gin.Context) {
	couponID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	resp, err := h.couponService.Activate(c.Request.Context(), couponID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate disables a coupon without deleting it. Admin only.
func (h *CouponHandler) Deactivate(c *gin.Context) {
	couponID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	resp, err := h.couponService.Deactivate(c.Request.Context(), couponID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

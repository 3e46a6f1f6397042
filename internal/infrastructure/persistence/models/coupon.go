package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/coupon"
)

// CouponModel is the persistence model for the Coupon aggregate root.
type CouponModel struct {
	AggregateModel
	Code            string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	DiscountType    string          `gorm:"type:varchar(20);not null"`
	DiscountValue   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MinimumPurchase decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ExpiresAt       *time.Time      `gorm:"index"`
	IsActive        bool            `gorm:"not null;default:true"`
	UsageCount      int64           `gorm:"not null;default:0"`
	UsageLimit      int64           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}

// ToDomain converts the persistence model to a domain Coupon aggregate.
func (m *CouponModel) ToDomain() *coupon.Coupon {
	return &coupon.Coupon{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		DiscountType:      coupon.DiscountType(m.DiscountType),
		DiscountValue:     m.DiscountValue,
		MinimumPurchase:   m.MinimumPurchase,
		ExpiresAt:         m.ExpiresAt,
		IsActive:          m.IsActive,
		UsageCount:        m.UsageCount,
		UsageLimit:        m.UsageLimit,
	}
}

// FromDomain populates the persistence model from a domain Coupon aggregate.
func (m *CouponModel) FromDomain(c *coupon.Coupon) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.DiscountType = c.DiscountType.String()
	m.DiscountValue = c.DiscountValue
	m.MinimumPurchase = c.MinimumPurchase
	m.ExpiresAt = c.ExpiresAt
	m.IsActive = c.IsActive
	m.UsageCount = c.UsageCount
	m.UsageLimit = c.UsageLimit
}

// CouponModelFromDomain creates a new persistence model from a domain Coupon aggregate.
func CouponModelFromDomain(c *coupon.Coupon) *CouponModel {
	m := &CouponModel{}
	m.FromDomain(c)
	return m
}

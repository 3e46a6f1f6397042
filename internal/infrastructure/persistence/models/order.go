package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/order"
	"github.com/shopcore/backend/internal/domain/payment"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	AggregateModel
	OrderNumber          string              `gorm:"type:varchar(32);not null;uniqueIndex"`
	UserID               uuid.UUID           `gorm:"type:uuid;not null;index"`
	ShippingAddress      valueobject.Address `gorm:"type:jsonb;not null"`
	PaymentMethod        string              `gorm:"type:varchar(20);not null"`
	PaymentTransactionID string              `gorm:"type:varchar(100)"`
	PaymentStatus        string              `gorm:"type:varchar(20);not null"`
	CouponCode           string              `gorm:"type:varchar(32)"`
	Subtotal             decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	DiscountAmount       decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	ShippingPrice        decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	TaxPrice             decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPrice           decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Status               string              `gorm:"type:varchar(20);not null;index"`
	HeldFrom             *string             `gorm:"type:varchar(20)"`
	CancellationReason   string              `gorm:"type:text"`
	CancelledAt          *time.Time
	DeliveredAt          *time.Time
	// Associations
	Items []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		UserID:            m.UserID,
		ShippingAddress:   m.ShippingAddress,
		Payment: order.PaymentInfo{
			Method:        payment.Method(m.PaymentMethod),
			TransactionID: m.PaymentTransactionID,
			Status:        payment.TransactionStatus(m.PaymentStatus),
		},
		CouponCode:         m.CouponCode,
		Subtotal:           m.Subtotal,
		DiscountAmount:     m.DiscountAmount,
		ShippingPrice:      m.ShippingPrice,
		TaxPrice:           m.TaxPrice,
		TotalPrice:         m.TotalPrice,
		Status:             order.Status(m.Status),
		CancellationReason: m.CancellationReason,
		CancelledAt:        m.CancelledAt,
		DeliveredAt:        m.DeliveredAt,
		Items:              make([]order.Item, len(m.Items)),
	}
	if m.HeldFrom != nil {
		held := order.Status(*m.HeldFrom)
		o.HeldFrom = &held
	}
	for i, item := range m.Items {
		o.Items[i] = item.ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order aggregate.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.UserID = o.UserID
	m.ShippingAddress = o.ShippingAddress
	m.PaymentMethod = string(o.Payment.Method)
	m.PaymentTransactionID = o.Payment.TransactionID
	m.PaymentStatus = string(o.Payment.Status)
	m.CouponCode = o.CouponCode
	m.Subtotal = o.Subtotal
	m.DiscountAmount = o.DiscountAmount
	m.ShippingPrice = o.ShippingPrice
	m.TaxPrice = o.TaxPrice
	m.TotalPrice = o.TotalPrice
	m.Status = o.Status.String()
	m.HeldFrom = nil
	if o.HeldFrom != nil {
		held := o.HeldFrom.String()
		m.HeldFrom = &held
	}
	m.CancellationReason = o.CancellationReason
	m.CancelledAt = o.CancelledAt
	m.DeliveredAt = o.DeliveredAt
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModelFromDomain(item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order aggregate.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line snapshot.
// Items are written once with their order and never updated.
type OrderItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	ImageURL        string          `gorm:"type:varchar(500)"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Quantity        int64           `gorm:"not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain order Item.
func (m *OrderItemModel) ToDomain() order.Item {
	return order.Item{
		ID:              m.ID,
		OrderID:         m.OrderID,
		ProductID:       m.ProductID,
		ProductName:     m.ProductName,
		ImageURL:        m.ImageURL,
		UnitPrice:       m.UnitPrice,
		DiscountPercent: m.DiscountPercent,
		Quantity:        m.Quantity,
		Amount:          m.Amount,
		CreatedAt:       m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain order Item.
func OrderItemModelFromDomain(item order.Item) OrderItemModel {
	return OrderItemModel{
		ID:              item.ID,
		OrderID:         item.OrderID,
		ProductID:       item.ProductID,
		ProductName:     item.ProductName,
		ImageURL:        item.ImageURL,
		UnitPrice:       item.UnitPrice,
		DiscountPercent: item.DiscountPercent,
		Quantity:        item.Quantity,
		Amount:          item.Amount,
		CreatedAt:       item.CreatedAt,
	}
}

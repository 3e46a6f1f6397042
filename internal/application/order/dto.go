package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/order"
)

// AddressInput represents a shipping address in requests
type AddressInput struct {
	Recipient  string `json:"recipient" binding:"required,min=1,max=200"`
	Line1      string `json:"line1" binding:"required,min=1,max=500"`
	Line2      string `json:"line2" binding:"max=500"`
	City       string `json:"city" binding:"required,min=1,max=100"`
	Region     string `json:"region" binding:"required,min=1,max=100"`
	PostalCode string `json:"postal_code" binding:"required,min=1,max=20"`
	Country    string `json:"country" binding:"required,min=2,max=100"`
	Phone      string `json:"phone" binding:"max=32"`
}

// PlaceOrderRequest represents a request to turn a cart into an order
type PlaceOrderRequest struct {
	ShippingAddress AddressInput `json:"shipping_address" binding:"required"`
	PaymentMethod   string       `json:"payment_method" binding:"required,oneof=COD STRIPE PAYPAL"`
	PaymentToken    string       `json:"payment_token"`
	CouponCode      string       `json:"coupon_code" binding:"omitempty,alphanum,min=3,max=32"`
	BuyNow          bool         `json:"buy_now"`
	PreOrder        bool         `json:"pre_order"`
}

// TransitionRequest represents an admin request to move an order to a
// target status
type TransitionRequest struct {
	Target string `json:"target" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

// CancelOrderRequest represents a customer cancellation request
type CancelOrderRequest struct {
	Reasons   []string `json:"reasons" binding:"required,min=1"`
	OtherText string   `json:"other_text" binding:"max=500"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status    *string    `form:"status"`
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Search    string     `form:"search"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ItemResponse represents an order item in API responses
type ItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ImageURL        string          `json:"image_url,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Quantity        int64           `json:"quantity"`
	Amount          decimal.Decimal `json:"amount"`
}

// AddressResponse represents a shipping address in API responses
type AddressResponse struct {
	Recipient  string `json:"recipient"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// PaymentResponse represents payment state in API responses
type PaymentResponse struct {
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id,omitempty"`
	Status        string `json:"status"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                 uuid.UUID       `json:"id"`
	OrderNumber        string          `json:"order_number"`
	UserID             uuid.UUID       `json:"user_id"`
	Items              []ItemResponse  `json:"items"`
	ShippingAddress    AddressResponse `json:"shipping_address"`
	Payment            PaymentResponse `json:"payment"`
	CouponCode         string          `json:"coupon_code,omitempty"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	ShippingPrice      decimal.Decimal `json:"shipping_price"`
	TaxPrice           decimal.Decimal `json:"tax_price"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	Status             string          `json:"status"`
	HeldFrom           *string         `json:"held_from,omitempty"`
	CancellationReason string          `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	DeliveredAt        *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// OrderListItemResponse is the condensed order shape for list endpoints
type OrderListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	UserID      uuid.UUID       `json:"user_id"`
	ItemCount   int             `json:"item_count"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StatusSummaryResponse reports order counts per status
type StatusSummaryResponse struct {
	Counts map[string]int64 `json:"counts"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ImageURL:        item.ImageURL,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Quantity:        item.Quantity,
			Amount:          item.Amount,
		})
	}

	var heldFrom *string
	if o.HeldFrom != nil {
		s := o.HeldFrom.String()
		heldFrom = &s
	}

	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Items:       items,
		ShippingAddress: AddressResponse{
			Recipient:  o.ShippingAddress.Recipient(),
			Line1:      o.ShippingAddress.Line1(),
			Line2:      o.ShippingAddress.Line2(),
			City:       o.ShippingAddress.City(),
			Region:     o.ShippingAddress.Region(),
			PostalCode: o.ShippingAddress.PostalCode(),
			Country:    o.ShippingAddress.Country(),
			Phone:      o.ShippingAddress.Phone(),
		},
		Payment: PaymentResponse{
			Method:        o.Payment.Method.String(),
			TransactionID: o.Payment.TransactionID,
			Status:        string(o.Payment.Status),
		},
		CouponCode:         o.CouponCode,
		Subtotal:           o.Subtotal,
		DiscountAmount:     o.DiscountAmount,
		ShippingPrice:      o.ShippingPrice,
		TaxPrice:           o.TaxPrice,
		TotalPrice:         o.TotalPrice,
		Status:             o.Status.String(),
		HeldFrom:           heldFrom,
		CancellationReason: o.CancellationReason,
		CancelledAt:        o.CancelledAt,
		DeliveredAt:        o.DeliveredAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

// ToOrderListItemResponses converts domain orders to list item DTOs
func ToOrderListItemResponses(orders []order.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		responses = append(responses, OrderListItemResponse{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			UserID:      o.UserID,
			ItemCount:   o.ItemCount(),
			TotalPrice:  o.TotalPrice,
			Status:      o.Status.String(),
			CreatedAt:   o.CreatedAt,
		})
	}
	return responses
}

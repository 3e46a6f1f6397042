package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypeOrderCancelled     = "OrderCancelled"
)

// ItemInfo represents item information carried by events, used for
// restocking and notification payloads
type ItemInfo struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

func itemInfos(o *Order) []ItemInfo {
	items := make([]ItemInfo, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemInfo{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Amount:      item.Amount,
		}
	}
	return items
}

// PlacedEvent is raised when a new order is created from a cart
type PlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      uuid.UUID       `json:"user_id"`
	Status      Status          `json:"status"`
	Items       []ItemInfo      `json:"items"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// NewPlacedEvent creates a new PlacedEvent
func NewPlacedEvent(o *Order) *PlacedEvent {
	return &PlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Status:          o.Status,
		Items:           itemInfos(o),
		TotalPrice:      o.TotalPrice,
	}
}

// EventType returns the event type name
func (e *PlacedEvent) EventType() string {
	return EventTypeOrderPlaced
}

// StatusChangedEvent is raised on every successful non-cancellation
// transition; the notification handler consumes it best-effort
type StatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      uuid.UUID `json:"user_id"`
	From        Status    `json:"from"`
	To          Status    `json:"to"`
	Actor       Actor     `json:"actor"`
}

// NewStatusChangedEvent creates a new StatusChangedEvent
func NewStatusChangedEvent(o *Order, from, to Status, actor Actor) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		From:            from,
		To:              to,
		Actor:           actor,
	}
}

// EventType returns the event type name
func (e *StatusChangedEvent) EventType() string {
	return EventTypeOrderStatusChanged
}

// CancelledEvent is raised when an order is cancelled. RequiresRefund
// tells the refund handler whether the payment gateway must be involved;
// Items drive restocking.
type CancelledEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID       `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	UserID         uuid.UUID       `json:"user_id"`
	Actor          Actor           `json:"actor"`
	Reason         string          `json:"reason"`
	RequiresRefund bool            `json:"requires_refund"`
	TransactionID  string          `json:"transaction_id,omitempty"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Items          []ItemInfo      `json:"items"`
}

// NewCancelledEvent creates a new CancelledEvent
func NewCancelledEvent(o *Order, actor Actor) *CancelledEvent {
	return &CancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Actor:           actor,
		Reason:          o.CancellationReason,
		RequiresRefund:  o.RequiresRefund(),
		TransactionID:   o.Payment.TransactionID,
		TotalPrice:      o.TotalPrice,
		Items:           itemInfos(o),
	}
}

// EventType returns the event type name
func (e *CancelledEvent) EventType() string {
	return EventTypeOrderCancelled
}

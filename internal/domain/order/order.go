package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/cart"
	"github.com/shopcore/backend/internal/domain/payment"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// Actor identifies who requested a status change
type Actor string

const (
	ActorCustomer Actor = "CUSTOMER"
	ActorAdmin    Actor = "ADMIN"
	ActorSystem   Actor = "SYSTEM"
)

// Item is an immutable snapshot of a cart line at order time. Name and
// image are copied so historical orders stay stable when the catalog
// later changes price, name, or stock.
type Item struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ProductID       uuid.UUID
	ProductName     string
	ImageURL        string
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Quantity        int64
	Amount          decimal.Decimal // discounted line total
	CreatedAt       time.Time
}

// PaymentInfo records how the order is paid
type PaymentInfo struct {
	Method        payment.Method
	TransactionID string
	Status        payment.TransactionStatus
}

// Order is the durable snapshot of a priced cart plus its evolving
// fulfillment status. Created once from a validated cart; mutated only
// through the status-transition API; never deleted (cancellation is a
// terminal status, not a row deletion).
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber        string
	UserID             uuid.UUID
	Items              []Item
	ShippingAddress    valueobject.Address
	Payment            PaymentInfo
	CouponCode         string
	Subtotal           decimal.Decimal
	DiscountAmount     decimal.Decimal
	ShippingPrice      decimal.Decimal
	TaxPrice           decimal.Decimal
	TotalPrice         decimal.Decimal
	Status             Status
	HeldFrom           *Status // state an ON_HOLD order resumes to
	CancellationReason string
	CancelledAt        *time.Time
	DeliveredAt        *time.Time
}

// ErrInvalidTransition builds the error for a target status not reachable
// from the current one; the allowed targets are carried for display
func ErrInvalidTransition(current, target Status) *shared.DomainError {
	allowed := current.AllowedTransitions()
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = s.String()
	}
	return shared.NewDomainErrorWithDetails(
		"INVALID_TRANSITION",
		"Order cannot transition from "+current.String()+" to "+target.String(),
		map[string]any{
			"current": current.String(),
			"target":  target.String(),
			"allowed": names,
		},
	)
}

// ErrTerminalState builds the error for transitions out of a terminal status
func ErrTerminalState(current Status) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		"TERMINAL_STATE",
		"Order is in terminal state "+current.String(),
		map[string]any{"current": current.String()},
	)
}

// ErrNotCancellable builds the error for customer cancellations of
// non-pending orders
func ErrNotCancellable(current Status) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		"NOT_CANCELLABLE",
		"Only pending orders can be cancelled",
		map[string]any{"current": current.String()},
	)
}

// NewFromCart snapshots a priced cart into a new order. The cart must be
// non-empty; stock re-validation and decrement happen in the application
// service around this constructor, inside one transaction.
func NewFromCart(orderNumber string, userID uuid.UUID, c *cart.Cart, address valueobject.Address, method payment.Method, discount, shipping, tax decimal.Decimal, couponCode string, preOrder bool) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if c == nil || c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot create an order from an empty cart")
	}
	if address.IsZero() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is required")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if discount.IsNegative() || shipping.IsNegative() || tax.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order amounts cannot be negative")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		ShippingAddress:   address,
		Payment: PaymentInfo{
			Method: method,
			Status: payment.TransactionPending,
		},
		CouponCode: couponCode,
		Status:     StatusPending,
	}
	if preOrder {
		o.Status = StatusPreOrder
	}

	now := time.Now()
	subtotal := decimal.Zero
	o.Items = make([]Item, 0, len(c.Lines))
	for _, line := range c.Lines {
		amount := line.Total().Round(2)
		o.Items = append(o.Items, Item{
			ID:              uuid.New(),
			OrderID:         o.ID,
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			ImageURL:        line.ImageURL,
			UnitPrice:       line.UnitPrice.Amount(),
			DiscountPercent: line.DiscountPercent,
			Quantity:        line.Quantity,
			Amount:          amount.Amount(),
			CreatedAt:       now,
		})
		subtotal = subtotal.Add(amount.Amount())
	}

	o.Subtotal = subtotal.Round(2)
	o.DiscountAmount = decimal.Min(discount, o.Subtotal)
	o.ShippingPrice = shipping.Round(2)
	o.TaxPrice = tax.Round(2)
	o.TotalPrice = o.Subtotal.Sub(o.DiscountAmount).Add(o.ShippingPrice).Add(o.TaxPrice).Round(2)

	o.AddDomainEvent(NewPlacedEvent(o))

	return o, nil
}

// Transition moves the order to a target status per the transition graph.
// Terminal states reject everything; ON_HOLD orders resume only to the
// exact state they were paused from. Cancellation requires a reason and
// stamps the cancellation bookkeeping.
func (o *Order) Transition(target Status, actor Actor, reason string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if o.Status.IsTerminal() {
		return ErrTerminalState(o.Status)
	}
	if !o.Status.CanTransitionTo(target) {
		return ErrInvalidTransition(o.Status, target)
	}
	if o.Status == StatusOnHold && o.HeldFrom != nil && target != *o.HeldFrom {
		return ErrInvalidTransition(o.Status, target)
	}
	if target == StatusCancelled && strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancellation reason is required")
	}

	from := o.Status
	now := time.Now()

	switch target {
	case StatusOnHold:
		held := from
		o.HeldFrom = &held
	case StatusCancelled:
		o.CancellationReason = strings.TrimSpace(reason)
		o.CancelledAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	}
	if from == StatusOnHold {
		o.HeldFrom = nil
	}

	o.Status = target
	o.UpdatedAt = now

	if target == StatusCancelled {
		o.AddDomainEvent(NewCancelledEvent(o, actor))
	} else {
		o.AddDomainEvent(NewStatusChangedEvent(o, from, target, actor))
	}

	return nil
}

// Cancel is the customer-facing cancellation path. Only pending orders
// are customer-cancellable; selected reasons (and free text when "Other"
// is among them) are joined into the cancellation reason.
func (o *Order) Cancel(reasons []string, otherText string, actor Actor) error {
	if o.Status != StatusPending {
		return ErrNotCancellable(o.Status)
	}

	parts := make([]string, 0, len(reasons)+1)
	hasOther := false
	for _, r := range reasons {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if strings.EqualFold(r, "Other") {
			hasOther = true
			continue
		}
		parts = append(parts, r)
	}
	if hasOther && strings.TrimSpace(otherText) != "" {
		parts = append(parts, strings.TrimSpace(otherText))
	}
	if len(parts) == 0 {
		return shared.NewDomainError("INVALID_REASON", "At least one cancellation reason is required")
	}

	return o.Transition(StatusCancelled, actor, strings.Join(parts, "; "))
}

// MarkPaymentAuthorized records a successful authorization
func (o *Order) MarkPaymentAuthorized(transactionID string) {
	o.Payment.TransactionID = transactionID
	o.Payment.Status = payment.TransactionSuccess
	o.UpdatedAt = time.Now()
}

// MarkPaymentPending records an authorization awaiting async confirmation
func (o *Order) MarkPaymentPending(transactionID string) {
	o.Payment.TransactionID = transactionID
	o.Payment.Status = payment.TransactionPending
	o.UpdatedAt = time.Now()
}

// MarkPaymentFailed records a failed authorization
func (o *Order) MarkPaymentFailed() {
	o.Payment.Status = payment.TransactionFailed
	o.UpdatedAt = time.Now()
}

// RequiresRefund returns true when cancelling this order must trigger a
// refund against the payment gateway
func (o *Order) RequiresRefund() bool {
	return o.Payment.Status == payment.TransactionSuccess && o.Payment.TransactionID != ""
}

// IsTerminal returns true if the order is delivered or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// ItemCount returns the number of item lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all item quantities
func (o *Order) TotalQuantity() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// GetTotalMoney returns the order total as Money
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalPrice)
}

package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	cartapp "github.com/shopcore/backend/internal/application/cart"
	"github.com/shopcore/backend/internal/domain/cart"
	"github.com/shopcore/backend/internal/domain/coupon"
	"github.com/shopcore/backend/internal/domain/order"
	"github.com/shopcore/backend/internal/domain/payment"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// DiscountPricer validates and prices a coupon without consuming a use.
// The usage commit happens separately inside the placement transaction.
type DiscountPricer interface {
	Price(ctx context.Context, code string, subtotal decimal.Decimal) (*coupon.AppliedDiscount, error)
}

// OrderService handles order placement and lifecycle transitions.
//
// PlaceOrder snapshots a cart into an order inside one transaction: the
// per-line conditional stock decrements, the coupon usage increment and
// the order insert commit or roll back together. Payment authorization
// runs before the transaction; when the transaction then fails, the
// authorization is refunded best-effort. Notifications and other external
// calls happen only after the local commit.
type OrderService struct {
	scope     TransactionScope
	orders    order.Repository
	carts     cart.Repository
	discounts DiscountPricer
	pricing   order.PricingPolicy
	gateways  payment.Registry
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	scope TransactionScope,
	orders order.Repository,
	carts cart.Repository,
	discounts DiscountPricer,
	pricing order.PricingPolicy,
	gateways payment.Registry,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		scope:     scope,
		orders:    orders,
		carts:     carts,
		discounts: discounts,
		pricing:   pricing,
		gateways:  gateways,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrder turns the owner's cart into a durable order
func (s *OrderService) PlaceOrder(ctx context.Context, ownerID string, userID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	cartOwner := ownerID
	if req.BuyNow {
		cartOwner = cartapp.BuyNowOwner(ownerID)
	}

	c, err := s.carts.FindByOwner(ctx, cartOwner)
	if err != nil {
		if isNotFound(err) {
			return nil, shared.NewDomainError("EMPTY_CART", "Cannot create an order from an empty cart")
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot create an order from an empty cart")
	}

	address, err := toAddress(req.ShippingAddress)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	method := payment.Method(req.PaymentMethod)
	subtotal := c.Subtotal().Amount()

	// Price the coupon against the live subtotal; the usage counter moves
	// only inside the transaction below
	discount := decimal.Zero
	couponCode := ""
	if req.CouponCode != "" {
		applied, err := s.discounts.Price(ctx, req.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
		discount = applied.Amount.Amount()
		couponCode = applied.Code
	}

	discountedSubtotal := decimal.Max(subtotal.Sub(discount), decimal.Zero)
	quote, err := s.pricing.Quote(ctx, valueobject.NewMoneyUSD(discountedSubtotal))
	if err != nil {
		return nil, err
	}

	total := discountedSubtotal.Add(quote.ShippingPrice.Amount()).Add(quote.TaxPrice.Amount()).Round(2)

	orderNumber, err := s.orders.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	// COD ships unauthorized; card methods authorize up front so a
	// declined charge never touches stock
	var auth *payment.AuthorizeResult
	if method != payment.MethodCOD {
		gateway, err := s.gateways.Gateway(method)
		if err != nil {
			return nil, err
		}
		auth, err = gateway.Authorize(ctx, payment.AuthorizeRequest{
			OrderNumber: orderNumber,
			Amount:      valueobject.NewMoneyUSD(total),
			Token:       req.PaymentToken,
		})
		if err != nil {
			return nil, err
		}
		if auth.Status != payment.TransactionSuccess {
			return nil, payment.ErrAuthorizationFailed.WithDetail("transaction_id", auth.TransactionID)
		}
	}

	var placed *order.Order
	txErr := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, line := range c.Lines {
			if err := repos.StockRepo().DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		o, err := order.NewFromCart(
			orderNumber,
			userID,
			c,
			address,
			method,
			discount,
			quote.ShippingPrice.Amount(),
			quote.TaxPrice.Amount(),
			couponCode,
			req.PreOrder,
		)
		if err != nil {
			return err
		}
		if auth != nil {
			o.MarkPaymentAuthorized(auth.TransactionID)
		}

		if couponCode != "" {
			if err := repos.CouponRepo().IncrementUsage(ctx, couponCode); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		placed = o
		return nil
	})
	if txErr != nil {
		s.refundAuthorization(ctx, method, auth, total)
		return nil, txErr
	}

	if err := s.carts.Delete(ctx, cartOwner); err != nil {
		s.logger.Warn("failed to clear cart after order placement",
			zap.String("owner_id", cartOwner),
			zap.String("order_number", placed.OrderNumber),
			zap.Error(err),
		)
	}

	s.publishEvents(ctx, placed)

	response := ToOrderResponse(placed)
	return &response, nil
}

// Transition moves an order to a target status on behalf of an actor
func (s *OrderService) Transition(ctx context.Context, orderID uuid.UUID, req TransitionRequest, actor order.Actor) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.Transition(order.Status(req.Target), actor, req.Reason); err != nil {
		return nil, err
	}

	if err := s.orders.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// Cancel is the customer cancellation path; only pending orders qualify
func (s *OrderService) Cancel(ctx context.Context, orderID, userID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrForbidden
	}

	if err := o.Cancel(req.Reasons, req.OtherText, order.ActorCustomer); err != nil {
		return nil, err
	}

	if err := s.orders.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its order number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListByUser retrieves a user's orders with filtering and pagination
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderListItemResponse, error) {
	orders, err := s.orders.FindByUser(ctx, userID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToOrderListItemResponses(orders), nil
}

// List retrieves orders with filtering and pagination, for admin views
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	orders, err := s.orders.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orders.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// StatusSummary reports order counts per status, for admin dashboards
func (s *OrderService) StatusSummary(ctx context.Context) (*StatusSummaryResponse, error) {
	counts := make(map[string]int64, len(order.AllStatuses()))
	for _, status := range order.AllStatuses() {
		count, err := s.orders.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		counts[status.String()] = count
	}
	return &StatusSummaryResponse{Counts: counts}, nil
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	events := o.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish order events",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
	}
	o.ClearDomainEvents()
}

func (s *OrderService) refundAuthorization(ctx context.Context, method payment.Method, auth *payment.AuthorizeResult, total decimal.Decimal) {
	if auth == nil || auth.Status != payment.TransactionSuccess {
		return
	}
	gateway, err := s.gateways.Gateway(method)
	if err != nil {
		return
	}
	if _, err := gateway.Refund(ctx, auth.TransactionID, valueobject.NewMoneyUSD(total)); err != nil {
		s.logger.Error("failed to refund authorization after placement rollback",
			zap.String("transaction_id", auth.TransactionID),
			zap.Error(err),
		)
	}
}

func toAddress(in AddressInput) (valueobject.Address, error) {
	opts := make([]valueobject.AddressOption, 0, 2)
	if in.Line2 != "" {
		opts = append(opts, valueobject.WithAddressLine2(in.Line2))
	}
	if in.Phone != "" {
		opts = append(opts, valueobject.WithPhone(in.Phone))
	}
	return valueobject.NewAddress(in.Recipient, in.Line1, in.City, in.Region, in.PostalCode, in.Country, opts...)
}

func toDomainFilter(filter OrderListFilter) shared.Filter {
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
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}
	return domainFilter
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrNotFound.Code
	}
	return false
}

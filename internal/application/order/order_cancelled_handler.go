package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/inventory"
	"github.com/shopcore/backend/internal/domain/order"
	"github.com/shopcore/backend/internal/domain/payment"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// CancelledHandler reacts to an order cancellation: it refunds the
// payment when one was captured, returns the order's quantities to stock,
// and sends the cancellation notice. The refund is required work and
// returns an error for the bus to retry; restock and notification are
// best-effort.
type CancelledHandler struct {
	orders   order.Repository
	stock    inventory.StockRepository
	gateways payment.Registry
	notifier order.NotificationGateway
	logger   *zap.Logger
}

// NewCancelledHandler creates a new handler for order cancelled events
func NewCancelledHandler(
	orders order.Repository,
	stock inventory.StockRepository,
	gateways payment.Registry,
	notifier order.NotificationGateway,
	logger *zap.Logger,
) *CancelledHandler {
	return &CancelledHandler{
		orders:   orders,
		stock:    stock,
		gateways: gateways,
		notifier: notifier,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CancelledHandler) EventTypes() []string {
	return []string{order.EventTypeOrderCancelled}
}

// Handle processes an order cancellation
func (h *CancelledHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	cancelled, ok := event.(*order.CancelledEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", order.EventTypeOrderCancelled),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderCancelled, event.EventType())
	}

	h.logger.Info("processing order cancelled event",
		zap.String("order_number", cancelled.OrderNumber),
		zap.String("reason", cancelled.Reason),
		zap.Bool("requires_refund", cancelled.RequiresRefund),
		zap.Int("items_count", len(cancelled.Items)),
	)

	if cancelled.RequiresRefund {
		if err := h.refund(ctx, cancelled); err != nil {
			return err
		}
	}

	for _, item := range cancelled.Items {
		if err := h.stock.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			h.logger.Warn("failed to restore stock for cancelled order",
				zap.String("order_number", cancelled.OrderNumber),
				zap.String("product_id", item.ProductID.String()),
				zap.Int64("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}

	h.notify(ctx, cancelled)

	return nil
}

func (h *CancelledHandler) refund(ctx context.Context, cancelled *order.CancelledEvent) error {
	o, err := h.orders.FindByID(ctx, cancelled.OrderID)
	if err != nil {
		return fmt.Errorf("load order %s for refund: %w", cancelled.OrderNumber, err)
	}

	gateway, err := h.gateways.Gateway(o.Payment.Method)
	if err != nil {
		return fmt.Errorf("resolve gateway for refund of %s: %w", cancelled.OrderNumber, err)
	}

	result, err := gateway.Refund(ctx, cancelled.TransactionID, valueobject.NewMoneyUSD(cancelled.TotalPrice))
	if err != nil {
		h.logger.Error("refund failed for cancelled order",
			zap.String("order_number", cancelled.OrderNumber),
			zap.String("transaction_id", cancelled.TransactionID),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("refund issued for cancelled order",
		zap.String("order_number", cancelled.OrderNumber),
		zap.String("refund_id", result.RefundID),
	)

	return nil
}

func (h *CancelledHandler) notify(ctx context.Context, cancelled *order.CancelledEvent) {
	o, err := h.orders.FindByID(ctx, cancelled.OrderID)
	if err != nil {
		h.logger.Warn("order not found for cancellation notification",
			zap.String("order_number", cancelled.OrderNumber),
			zap.Error(err),
		)
		return
	}

	if err := h.notifier.SendStatusUpdate(ctx, o, order.StatusCancelled); err != nil {
		h.logger.Warn("cancellation notification delivery failed",
			zap.String("order_number", cancelled.OrderNumber),
			zap.Error(err),
		)
	}
}

var _ shared.EventHandler = (*CancelledHandler)(nil)

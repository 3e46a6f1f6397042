package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/order"
	"github.com/shopcore/backend/internal/domain/shared"
)

// StatusChangedHandler delivers a status-update notification whenever an
// order moves through its lifecycle. Delivery is best-effort: a failed
// send is logged and never fails the transition that triggered it.
type StatusChangedHandler struct {
	orders   order.Repository
	notifier order.NotificationGateway
	logger   *zap.Logger
}

// NewStatusChangedHandler creates a new handler for order status events
func NewStatusChangedHandler(
	orders order.Repository,
	notifier order.NotificationGateway,
	logger *zap.Logger,
) *StatusChangedHandler {
	return &StatusChangedHandler{
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *StatusChangedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderStatusChanged, order.EventTypeOrderPlaced}
}

// Handle sends the customer a notification for the new status
func (h *StatusChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var orderID = event.AggregateID()
	var newStatus order.Status

	switch e := event.(type) {
	case *order.StatusChangedEvent:
		newStatus = e.To
	case *order.PlacedEvent:
		newStatus = e.Status
	default:
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	o, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		h.logger.Warn("order not found for status notification",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return nil
	}

	if err := h.notifier.SendStatusUpdate(ctx, o, newStatus); err != nil {
		h.logger.Warn("status notification delivery failed",
			zap.String("order_number", o.OrderNumber),
			zap.String("status", newStatus.String()),
			zap.Error(err),
		)
	}

	return nil
}

var _ shared.EventHandler = (*StatusChangedHandler)(nil)

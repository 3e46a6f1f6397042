package order

import "context"

// NotificationGateway delivers status updates to the customer. Delivery is
// best-effort: callers invoke it after the local transaction commits and a
// failure never rolls the transition back.
type NotificationGateway interface {
	SendStatusUpdate(ctx context.Context, o *Order, newStatus Status) error
}

package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopcore/backend/internal/domain/shared"
)

// Repository persists orders. There is deliberately no Delete: orders are
// never removed, cancellation is a terminal status.
type Repository interface {
	// FindByID returns an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber returns an order by its unique order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByUser returns a user's orders matching the filter
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll returns orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count returns the number of orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus returns the number of orders in a status
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// Save creates a new order
	Save(ctx context.Context, o *Order) error

	// SaveWithLock updates an order guarded by its version, returning a
	// concurrency conflict when another writer got there first
	SaveWithLock(ctx context.Context, o *Order) error

	// GenerateOrderNumber produces the next human-readable order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}

package coupon

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopcore/backend/internal/domain/shared"
)

// Repository persists coupons
type Repository interface {
	// FindByID returns a coupon by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)

	// FindByCode returns a coupon by its unique code
	// Returns shared.ErrNotFound when the code does not exist
	FindByCode(ctx context.Context, code string) (*Coupon, error)

	// FindAll returns coupons matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Coupon, error)

	// Count returns the number of coupons matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a coupon
	Save(ctx context.Context, c *Coupon) error

	// IncrementUsage atomically increments the usage counter for a code.
	// The increment and the usage-limit check are one guarded update, so
	// two simultaneous redemptions cannot both pass a nearly-exhausted
	// cap. Returns ErrUsageLimitReached when the guard fails and
	// shared.ErrNotFound when the code does not exist.
	IncrementUsage(ctx context.Context, code string) error
}

package cart

import "context"

// Repository stores carts keyed by owner (user ID or session ID).
// A cart is never shared between two owners; buy-now carts live under a
// derived owner key so they cannot collide with the shopping cart.
type Repository interface {
	// FindByOwner returns the cart for an owner
	// Returns shared.ErrNotFound when the owner has no cart
	FindByOwner(ctx context.Context, ownerID string) (*Cart, error)

	// Save creates or replaces the owner's cart
	Save(ctx context.Context, c *Cart) error

	// Delete removes the owner's cart; deleting a missing cart is a no-op
	Delete(ctx context.Context, ownerID string) error
}

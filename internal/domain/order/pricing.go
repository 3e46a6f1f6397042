package order

import (
	"context"

	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// PricingQuote carries the shipping and tax charges for an order
type PricingQuote struct {
	ShippingPrice valueobject.Money
	TaxPrice      valueobject.Money
}

// PricingPolicy quotes shipping and tax for a discounted subtotal
type PricingPolicy interface {
	Quote(ctx context.Context, discountedSubtotal valueobject.Money) (PricingQuote, error)
}

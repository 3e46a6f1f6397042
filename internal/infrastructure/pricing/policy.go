package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/order"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
	"github.com/shopcore/backend/internal/infrastructure/config"
)

// StandardPolicy quotes shipping and tax from configuration: a flat
// shipping price waived at a free-shipping threshold, and a proportional
// tax on the discounted subtotal.
type StandardPolicy struct {
	flatShipping          decimal.Decimal
	freeShippingThreshold decimal.Decimal
	taxRate               decimal.Decimal
}

// NewStandardPolicy creates a policy from the pricing configuration
func NewStandardPolicy(cfg *config.PricingConfig) (*StandardPolicy, error) {
	flatShipping, err := decimal.NewFromString(cfg.FlatShipping)
	if err != nil {
		return nil, fmt.Errorf("invalid flat shipping price %q: %w", cfg.FlatShipping, err)
	}
	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return nil, fmt.Errorf("invalid free shipping threshold %q: %w", cfg.FreeShippingThreshold, err)
	}
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("invalid tax rate %q: %w", cfg.TaxRate, err)
	}
	if flatShipping.IsNegative() || threshold.IsNegative() || taxRate.IsNegative() {
		return nil, fmt.Errorf("pricing values cannot be negative")
	}

	return &StandardPolicy{
		flatShipping:          flatShipping,
		freeShippingThreshold: threshold,
		taxRate:               taxRate,
	}, nil
}

// Quote prices shipping and tax for a discounted subtotal
func (p *StandardPolicy) Quote(ctx context.Context, discountedSubtotal valueobject.Money) (order.PricingQuote, error) {
	shipping := p.flatShipping
	if discountedSubtotal.Amount().GreaterThanOrEqual(p.freeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := discountedSubtotal.Amount().Mul(p.taxRate).Round(2)

	return order.PricingQuote{
		ShippingPrice: valueobject.NewMoneyUSD(shipping),
		TaxPrice:      valueobject.NewMoneyUSD(tax),
	}, nil
}

// Ensure StandardPolicy implements order.PricingPolicy
var _ order.PricingPolicy = (*StandardPolicy)(nil)

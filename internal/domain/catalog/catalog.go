package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// Product holds the catalog data the order core needs about a product.
// Price and discount are read at cart-mutation time and snapshotted into
// cart lines; the catalog remains the authoritative source until an order
// is placed.
type Product struct {
	ID              uuid.UUID
	Name            string
	SKU             string
	ImageURL        string
	UnitPrice       valueobject.Money
	DiscountPercent decimal.Decimal // 0-100, product-level promotional discount
}

// Catalog is the read port over the external product catalog
type Catalog interface {
	// GetProduct returns catalog data for a product
	// Returns shared.ErrNotFound if the product does not exist
	GetProduct(ctx context.Context, productID uuid.UUID) (*Product, error)

	// GetProducts returns catalog data for multiple products keyed by ID
	// Missing products are absent from the result, not an error
	GetProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*Product, error)
}

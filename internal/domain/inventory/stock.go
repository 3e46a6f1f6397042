package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shopcore/backend/internal/domain/shared"
)

// StockItem tracks the available quantity of a product
type StockItem struct {
	shared.BaseAggregateRoot
	ProductID         uuid.UUID
	AvailableQuantity int64
}

// NewStockItem creates a new stock record for a product
func NewStockItem(productID uuid.UUID, quantity int64) (*StockItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		AvailableQuantity: quantity,
	}, nil
}

// HasStock returns true if at least one unit is available
func (s *StockItem) HasStock() bool {
	return s.AvailableQuantity > 0
}

// CanSatisfy returns true if the requested quantity is available
func (s *StockItem) CanSatisfy(quantity int64) bool {
	return quantity > 0 && quantity <= s.AvailableQuantity
}

// Replenish adds quantity back to the available stock
func (s *StockItem) Replenish(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Replenish quantity must be positive")
	}
	s.AvailableQuantity += quantity
	s.UpdatedAt = time.Now()
	return nil
}

// ErrInsufficientStock builds the typed error returned when a requested
// quantity exceeds the available stock for a product
func ErrInsufficientStock(productID uuid.UUID, requested, available int64) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		"INSUFFICIENT_STOCK",
		"Insufficient stock available",
		map[string]any{
			"product_id": productID.String(),
			"requested":  requested,
			"available":  available,
		},
	)
}

// StockLedger is the read port over product stock counts.
// Every cart mutation re-queries the ledger rather than trusting a stale
// value, because concurrent shoppers may deplete stock between page loads.
type StockLedger interface {
	// AvailableStock returns the current available quantity for a product
	// A missing stock record reads as zero, not an error
	AvailableStock(ctx context.Context, productID uuid.UUID) (int64, error)
}

// StockRepository extends the ledger with the write side used at order
// placement and cancellation
type StockRepository interface {
	StockLedger

	// FindByProduct returns the stock record for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) (*StockItem, error)

	// Save creates or updates a stock record
	Save(ctx context.Context, item *StockItem) error

	// DecrementStock atomically decrements available stock for a product.
	// The decrement and the stock check are a single conditional update
	// with an available >= quantity guard; when the guard fails no row is
	// touched and ErrInsufficientStock is returned. Two shoppers racing
	// for the last units can therefore never both succeed.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int64) error

	// RestoreStock atomically returns quantity to the available stock,
	// used when a placed order is cancelled
	RestoreStock(ctx context.Context, productID uuid.UUID, quantity int64) error
}

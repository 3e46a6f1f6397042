package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// Line is a single intended purchase in a cart. Unit price and discount
// are snapshotted when the product is added; stock is re-read from the
// ledger on every mutation and never persisted with the line.
type Line struct {
	ProductID       uuid.UUID         `json:"product_id"`
	ProductName     string            `json:"product_name"`
	ImageURL        string            `json:"image_url,omitempty"`
	UnitPrice       valueobject.Money `json:"unit_price"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	Quantity        int64             `json:"quantity"`
}

// Total returns the discounted line amount, unrounded
func (l Line) Total() valueobject.Money {
	discounted := decimal.NewFromInt(100).Sub(l.DiscountPercent).Div(decimal.NewFromInt(100))
	return l.UnitPrice.MultiplyByInt(l.Quantity).Multiply(discounted)
}

// Cart is an in-progress collection of purchase lines owned by a single
// shopper (authenticated user or anonymous session). Lines are unique per
// product: adding an existing product merges quantities.
//
// A buy-now flow uses the same type restricted to a single line, so both
// flows share one set of quantity and stock-check rules.
type Cart struct {
	shared.BaseEntity
	OwnerID    string `json:"owner_id"`
	Lines      []Line `json:"lines"`
	SingleLine bool   `json:"single_line"`
}

// AddResult reports the outcome of an AddItem call. Clamped signals the
// requested quantity exceeded stock and was reduced, so the caller can
// warn the shopper rather than silently truncate.
type AddResult struct {
	Line    Line
	Clamped bool
}

// NewCart creates an empty cart for an owner
func NewCart(ownerID string) (*Cart, error) {
	if ownerID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "Cart owner cannot be empty")
	}
	return &Cart{
		BaseEntity: shared.NewBaseEntity(),
		OwnerID:    ownerID,
		Lines:      make([]Line, 0),
	}, nil
}

// NewBuyNowCart creates an ephemeral single-line cart for a buy-now flow
func NewBuyNowCart(ownerID string) (*Cart, error) {
	c, err := NewCart(ownerID)
	if err != nil {
		return nil, err
	}
	c.SingleLine = true
	return c, nil
}

// ErrOutOfStock builds the error returned when a product has no stock
func ErrOutOfStock(productID uuid.UUID) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		"OUT_OF_STOCK",
		"Product is out of stock",
		map[string]any{"product_id": productID.String()},
	)
}

// ErrStockExceeded builds the error returned when a requested quantity
// exceeds available stock; the line is left unchanged and the caller
// decides whether to re-present the clamped value
func ErrStockExceeded(productID uuid.UUID, requested, available int64) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		"STOCK_EXCEEDED",
		"Requested quantity exceeds available stock",
		map[string]any{
			"product_id": productID.String(),
			"requested":  requested,
			"available":  available,
		},
	)
}

// AddItem adds a product to the cart, merging with an existing line for
// the same product. The merged quantity is clamped to currentStock and
// the clamp is surfaced in the result. Fails with OUT_OF_STOCK when no
// stock is available at all.
func (c *Cart) AddItem(productID uuid.UUID, productName, imageURL string, unitPrice valueobject.Money, discountPercent decimal.Decimal, quantity, currentStock int64) (AddResult, error) {
	if productID == uuid.Nil {
		return AddResult{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return AddResult{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return AddResult{}, shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}
	if currentStock <= 0 {
		return AddResult{}, ErrOutOfStock(productID)
	}

	// A buy-now cart holds exactly one line; switching products replaces it
	if c.SingleLine && len(c.Lines) > 0 && c.Lines[0].ProductID != productID {
		c.Lines = c.Lines[:0]
	}

	if existing := c.line(productID); existing != nil {
		requested := existing.Quantity + quantity
		clamped := requested > currentStock
		if clamped {
			requested = currentStock
		}
		existing.Quantity = requested
		c.UpdatedAt = time.Now()
		return AddResult{Line: *existing, Clamped: clamped}, nil
	}

	clamped := quantity > currentStock
	if clamped {
		quantity = currentStock
	}
	line := Line{
		ProductID:       productID,
		ProductName:     productName,
		ImageURL:        imageURL,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		Quantity:        quantity,
	}
	c.Lines = append(c.Lines, line)
	c.UpdatedAt = time.Now()

	return AddResult{Line: line, Clamped: clamped}, nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity below 1
// removes the line. A quantity above currentStock fails with
// STOCK_EXCEEDED and leaves the line unchanged: the shopper keeps the
// decision instead of getting a silent correction.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity, currentStock int64) error {
	if quantity < 1 {
		c.RemoveItem(productID)
		return nil
	}

	line := c.line(productID)
	if line == nil {
		return shared.NewDomainError("LINE_NOT_FOUND", "Product is not in the cart")
	}
	if quantity > currentStock {
		return ErrStockExceeded(productID, quantity, currentStock)
	}

	line.Quantity = quantity
	c.UpdatedAt = time.Now()
	return nil
}

// RemoveItem removes a line from the cart. Removing a product that is not
// in the cart is a no-op, not an error.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for idx, line := range c.Lines {
		if line.ProductID == productID {
			c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Subtotal returns the discounted sum over all lines, rounded half-up to
// two decimal places. Pure: no cart state is touched.
func (c *Cart) Subtotal() valueobject.Money {
	total := valueobject.ZeroUSD()
	for _, line := range c.Lines {
		total = total.MustAdd(line.Total())
	}
	return total.Round(2)
}

// Clear empties all lines, used after a successful order placement
func (c *Cart) Clear() {
	c.Lines = c.Lines[:0]
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount returns the number of distinct lines
func (c *Cart) ItemCount() int {
	return len(c.Lines)
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// GetLine returns a copy of the line for a product, or nil when absent
func (c *Cart) GetLine(productID uuid.UUID) *Line {
	if line := c.line(productID); line != nil {
		copied := *line
		return &copied
	}
	return nil
}

func (c *Cart) line(productID uuid.UUID) *Line {
	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			return &c.Lines[idx]
		}
	}
	return nil
}

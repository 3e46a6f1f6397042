package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/cart"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest represents a request to change a line's quantity
type UpdateQuantityRequest struct {
	Quantity int64 `json:"quantity" binding:"required"`
}

// BuyNowRequest represents a request to start a buy-now checkout
type BuyNowRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// LineResponse represents a cart line in API responses
type LineResponse struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ImageURL        string          `json:"image_url,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Quantity        int64           `json:"quantity"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	OwnerID       string          `json:"owner_id"`
	Lines         []LineResponse  `json:"lines"`
	ItemCount     int             `json:"item_count"`
	TotalQuantity int64           `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// AddItemResponse carries the updated cart plus a clamp warning when the
// requested quantity was reduced to the available stock
type AddItemResponse struct {
	Cart    CartResponse `json:"cart"`
	Clamped bool         `json:"clamped"`
}

// ToLineResponse converts a domain cart line to a response DTO
func ToLineResponse(l cart.Line) LineResponse {
	return LineResponse{
		ProductID:       l.ProductID,
		ProductName:     l.ProductName,
		ImageURL:        l.ImageURL,
		UnitPrice:       l.UnitPrice.Amount(),
		DiscountPercent: l.DiscountPercent,
		Quantity:        l.Quantity,
		LineTotal:       l.Total().Round(2).Amount(),
	}
}

// ToCartResponse converts a domain cart to a response DTO
func ToCartResponse(c *cart.Cart) CartResponse {
	lines := make([]LineResponse, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, ToLineResponse(l))
	}
	return CartResponse{
		OwnerID:       c.OwnerID,
		Lines:         lines,
		ItemCount:     c.ItemCount(),
		TotalQuantity: c.TotalQuantity(),
		Subtotal:      c.Subtotal().Amount(),
	}
}

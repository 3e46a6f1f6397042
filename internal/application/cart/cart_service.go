package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shopcore/backend/internal/domain/cart"
	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/inventory"
	"github.com/shopcore/backend/internal/domain/shared"
)

// buyNowPrefix derives a separate owner key for buy-now carts so the
// ephemeral single-line cart never collides with the shopping cart.
const buyNowPrefix = "buynow:"

// CartService handles cart mutations. Every mutation re-reads the stock
// ledger so a stale quantity from the page load can never be trusted.
type CartService struct {
	carts   cart.Repository
	catalog catalog.Catalog
	stock   inventory.StockLedger
}

// NewCartService creates a new CartService
func NewCartService(carts cart.Repository, cat catalog.Catalog, stock inventory.StockLedger) *CartService {
	return &CartService{
		carts:   carts,
		catalog: cat,
		stock:   stock,
	}
}

// AddItem adds a product to the owner's cart, merging quantities when the
// product is already present and clamping at current stock
func (s *CartService) AddItem(ctx context.Context, ownerID string, req AddItemRequest) (*AddItemResponse, error) {
	c, err := s.loadOrCreate(ctx, ownerID, false)
	if err != nil {
		return nil, err
	}

	result, err := s.addToCart(ctx, c, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	return &AddItemResponse{Cart: ToCartResponse(c), Clamped: result.Clamped}, nil
}

// UpdateQuantity sets a line's quantity. Below 1 removes the line; above
// current stock the call fails and the cart is left untouched.
func (s *CartService) UpdateQuantity(ctx context.Context, ownerID string, productID uuid.UUID, req UpdateQuantityRequest) (*CartResponse, error) {
	c, err := s.carts.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	available, err := s.stock.AvailableStock(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateQuantity(productID, req.Quantity, available); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCartResponse(c)
	return &resp, nil
}

// RemoveItem removes a product from the cart; removing an absent product
// succeeds without change
func (s *CartService) RemoveItem(ctx context.Context, ownerID string, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.carts.FindByOwner(ctx, ownerID)
	if err != nil {
		if isNotFound(err) {
			empty, nerr := cart.NewCart(ownerID)
			if nerr != nil {
				return nil, nerr
			}
			resp := ToCartResponse(empty)
			return &resp, nil
		}
		return nil, err
	}

	c.RemoveItem(productID)

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCartResponse(c)
	return &resp, nil
}

// Get returns the owner's cart, or an empty cart when none exists yet
func (s *CartService) Get(ctx context.Context, ownerID string) (*CartResponse, error) {
	c, err := s.loadOrCreate(ctx, ownerID, false)
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

// Clear empties and deletes the owner's cart
func (s *CartService) Clear(ctx context.Context, ownerID string) error {
	return s.carts.Delete(ctx, ownerID)
}

// BuyNow builds a single-line cart under a derived owner key. The line
// goes through the same stock-check and clamp rules as a regular add, so
// buy-now cannot bypass inventory limits.
func (s *CartService) BuyNow(ctx context.Context, ownerID string, req BuyNowRequest) (*AddItemResponse, error) {
	c, err := s.loadOrCreate(ctx, BuyNowOwner(ownerID), true)
	if err != nil {
		return nil, err
	}

	result, err := s.addToCart(ctx, c, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	return &AddItemResponse{Cart: ToCartResponse(c), Clamped: result.Clamped}, nil
}

// BuyNowOwner derives the storage key for an owner's buy-now cart
func BuyNowOwner(ownerID string) string {
	return buyNowPrefix + ownerID
}

func (s *CartService) addToCart(ctx context.Context, c *cart.Cart, productID uuid.UUID, quantity int64) (cart.AddResult, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return cart.AddResult{}, err
	}

	available, err := s.stock.AvailableStock(ctx, productID)
	if err != nil {
		return cart.AddResult{}, err
	}

	return c.AddItem(
		product.ID,
		product.Name,
		product.ImageURL,
		product.UnitPrice,
		product.DiscountPercent,
		quantity,
		available,
	)
}

func (s *CartService) loadOrCreate(ctx context.Context, ownerID string, singleLine bool) (*cart.Cart, error) {
	c, err := s.carts.FindByOwner(ctx, ownerID)
	if err == nil {
		return c, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	if singleLine {
		return cart.NewBuyNowCart(ownerID)
	}
	return cart.NewCart(ownerID)
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrNotFound.Code
	}
	return false
}

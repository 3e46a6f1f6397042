package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopcore/backend/internal/domain/inventory"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/infrastructure/persistence/models"
)

// GormStockRepository implements inventory.StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// AvailableStock returns the current available quantity for a product.
// A missing stock record reads as zero.
func (r *GormStockRepository) AvailableStock(ctx context.Context, productID uuid.UUID) (int64, error) {
	var available int64
	err := r.db.WithContext(ctx).
		Model(&models.StockItemModel{}).
		Where("product_id = ?", productID).
		Select("available_quantity").
		Take(&available).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return available, nil
}

// FindByProduct returns the stock record for a product
func (r *GormStockRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	var model models.StockItemModel
	if err := r.db.WithContext(ctx).First(&model, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a stock record
func (r *GormStockRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	model := models.StockItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// DecrementStock atomically decrements available stock. The availability
// check is part of the UPDATE's WHERE clause, so two shoppers racing for
// the last units can never both succeed.
func (r *GormStockRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Decrement quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&models.StockItemModel{}).
		Where("product_id = ? AND available_quantity >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity - ?", quantity),
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		available, err := r.AvailableStock(ctx, productID)
		if err != nil {
			return err
		}
		return inventory.ErrInsufficientStock(productID, quantity, available)
	}
	return nil
}

// RestoreStock atomically returns quantity to the available stock
func (r *GormStockRepository) RestoreStock(ctx context.Context, productID uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Restore quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&models.StockItemModel{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity + ?", quantity),
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStockRepository implements inventory.StockRepository
var _ inventory.StockRepository = (*GormStockRepository)(nil)

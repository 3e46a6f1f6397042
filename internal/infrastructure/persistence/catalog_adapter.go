package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/infrastructure/persistence/models"
)

// GormCatalog implements the catalog read port over the products table
type GormCatalog struct {
	db *gorm.DB
}

// NewGormCatalog creates a new GormCatalog
func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// GetProduct returns catalog data for a product
func (r *GormCatalog) GetProduct(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetProducts returns catalog data for multiple products keyed by ID.
// Missing products are absent from the result.
func (r *GormCatalog) GetProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	if len(productIDs) == 0 {
		return map[uuid.UUID]*catalog.Product{}, nil
	}

	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	products := make(map[uuid.UUID]*catalog.Product, len(rows))
	for i := range rows {
		products[rows[i].ID] = rows[i].ToDomain()
	}
	return products, nil
}

// Ensure GormCatalog implements catalog.Catalog
var _ catalog.Catalog = (*GormCatalog)(nil)

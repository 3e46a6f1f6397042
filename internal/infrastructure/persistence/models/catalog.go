package models

import (
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// ProductModel is the persistence model for the catalog product read model.
// The order core only reads products; the catalog service owns writes.
type ProductModel struct {
	BaseModel
	Name            string          `gorm:"type:varchar(200);not null"`
	SKU             string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	ImageURL        string          `gorm:"type:varchar(500)"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to catalog product data.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:              m.ID,
		Name:            m.Name,
		SKU:             m.SKU,
		ImageURL:        m.ImageURL,
		UnitPrice:       valueobject.NewMoneyUSD(m.UnitPrice),
		DiscountPercent: m.DiscountPercent,
	}
}

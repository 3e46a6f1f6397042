package models

import (
	"github.com/google/uuid"

	"github.com/shopcore/backend/internal/domain/inventory"
)

// StockItemModel is the persistence model for the StockItem aggregate root.
type StockItemModel struct {
	AggregateModel
	ProductID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AvailableQuantity int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (StockItemModel) TableName() string {
	return "stock_items"
}

// ToDomain converts the persistence model to a domain StockItem aggregate.
func (m *StockItemModel) ToDomain() *inventory.StockItem {
	return &inventory.StockItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProductID:         m.ProductID,
		AvailableQuantity: m.AvailableQuantity,
	}
}

// FromDomain populates the persistence model from a domain StockItem aggregate.
func (m *StockItemModel) FromDomain(s *inventory.StockItem) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.ProductID = s.ProductID
	m.AvailableQuantity = s.AvailableQuantity
}

// StockItemModelFromDomain creates a new persistence model from a domain StockItem aggregate.
func StockItemModelFromDomain(s *inventory.StockItem) *StockItemModel {
	m := &StockItemModel{}
	m.FromDomain(s)
	return m
}

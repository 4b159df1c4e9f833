package catalog

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a finished good the business manufactures and sells.
// UnitPrice is the per-unit selling price; SRPPrice is the suggested retail
// price used for consignment and reseller channels.
type Product struct {
	shared.BaseAggregateRoot
	Name       string          `gorm:"size:150;not null;uniqueIndex:idx_products_name"`
	SKU        string          `gorm:"size:50;index"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SRPPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Unit       string          `gorm:"size:30"`
	IsArchived bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, sku, unit string, unitPrice, srpPrice decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() || srpPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product prices cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		Unit:              unit,
		UnitPrice:         unitPrice,
		SRPPrice:          srpPrice,
	}, nil
}

// UpdatePrices updates the unit and SRP prices
func (p *Product) UpdatePrices(unitPrice, srpPrice decimal.Decimal) error {
	if unitPrice.IsNegative() || srpPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product prices cannot be negative")
	}
	p.UnitPrice = unitPrice
	p.SRPPrice = srpPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Archive soft-deletes the product
func (p *Product) Archive() {
	p.IsArchived = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

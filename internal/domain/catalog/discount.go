package catalog

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Discount represents a named percentage discount applied to sold lines
type Discount struct {
	shared.BaseAggregateRoot
	Name       string          `gorm:"size:100;not null;uniqueIndex:idx_discounts_name"`
	Percent    decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsArchived bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Discount) TableName() string {
	return "discounts"
}

// NewDiscount creates a new discount
func NewDiscount(name string, percent decimal.Decimal) (*Discount, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Discount name cannot be empty")
	}
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_PERCENT", "Discount percent must be between 0 and 100")
	}

	return &Discount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Percent:           percent,
	}, nil
}

// Archive soft-deletes the discount
func (d *Discount) Archive() {
	d.IsArchived = true
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

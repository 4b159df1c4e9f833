package catalog

import (
	"context"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// RawMaterialRepository defines the interface for raw material persistence
type RawMaterialRepository interface {
	// FindByID finds a raw material by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*RawMaterial, error)

	// FindAll finds all raw materials matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]RawMaterial, error)

	// Save creates or updates a raw material
	Save(ctx context.Context, material *RawMaterial) error

	// Count counts raw materials matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// DiscountRepository defines the interface for discount persistence
type DiscountRepository interface {
	// FindByID finds a discount by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Discount, error)

	// FindAll finds all discounts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Discount, error)

	// Save creates or updates a discount
	Save(ctx context.Context, discount *Discount) error
}

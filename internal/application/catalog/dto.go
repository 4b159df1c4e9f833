package catalog

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to add a product
type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=150"`
	SKU       string          `json:"sku" binding:"required,min=1,max=50"`
	Unit      string          `json:"unit" binding:"required,min=1,max=20"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	SRPPrice  decimal.Decimal `json:"srp_price" binding:"required"`
}

// UpdateProductPricesRequest represents a request to reprice a product
type UpdateProductPricesRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	SRPPrice  decimal.Decimal `json:"srp_price" binding:"required"`
}

// ProductResponse is the API view of a product
type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	SRPPrice  decimal.Decimal `json:"srp_price"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewProductResponse maps a domain product to its API view
func NewProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID,
		Name:      product.Name,
		SKU:       product.SKU,
		Unit:      product.Unit,
		UnitPrice: product.UnitPrice,
		SRPPrice:  product.SRPPrice,
		CreatedAt: product.CreatedAt,
	}
}

// CreateRawMaterialRequest represents a request to add a raw material
type CreateRawMaterialRequest struct {
	Name string `json:"name" binding:"required,min=1,max=150"`
	Unit string `json:"unit" binding:"required,min=1,max=20"`
}

// RawMaterialResponse is the API view of a raw material
type RawMaterialResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRawMaterialResponse maps a domain raw material to its API view
func NewRawMaterialResponse(material *catalog.RawMaterial) RawMaterialResponse {
	return RawMaterialResponse{
		ID:        material.ID,
		Name:      material.Name,
		Unit:      material.Unit,
		CreatedAt: material.CreatedAt,
	}
}

// CreateDiscountRequest represents a request to add a named discount
type CreateDiscountRequest struct {
	Name    string          `json:"name" binding:"required,min=1,max=100"`
	Percent decimal.Decimal `json:"percent" binding:"required"`
}

// DiscountResponse is the API view of a discount
type DiscountResponse struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Percent decimal.Decimal `json:"percent"`
}

// NewDiscountResponse maps a domain discount to its API view
func NewDiscountResponse(discount *catalog.Discount) DiscountResponse {
	return DiscountResponse{
		ID:      discount.ID,
		Name:    discount.Name,
		Percent: discount.Percent,
	}
}

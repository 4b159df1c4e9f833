package catalog

import (
	"context"

	"github.com/foodworks/backoffice/internal/domain/catalog"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogService maintains the products, raw materials and discounts that
// inventory and pricing reference
type CatalogService struct {
	productRepo  catalog.ProductRepository
	materialRepo catalog.RawMaterialRepository
	discountRepo catalog.DiscountRepository
	logger       *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	productRepo catalog.ProductRepository,
	materialRepo catalog.RawMaterialRepository,
	discountRepo catalog.DiscountRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		materialRepo: materialRepo,
		discountRepo: discountRepo,
		logger:       logger,
	}
}

// CreateProduct adds a new product to the catalog
func (s *CatalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.SKU, req.Unit, req.UnitPrice, req.SRPPrice)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := NewProductResponse(product)
	return &resp, nil
}

// UpdateProductPrices changes a product's unit and SRP prices. Existing order
// lines are unaffected until their order is next reconciled.
func (s *CatalogService) UpdateProductPrices(ctx context.Context, id uuid.UUID, unitPrice, srpPrice decimal.Decimal) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := product.UpdatePrices(unitPrice, srpPrice); err != nil {
		return err
	}
	return s.productRepo.Save(ctx, product)
}

// ArchiveProduct soft-deletes a product
func (s *CatalogService) ArchiveProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Archive()
	return s.productRepo.Save(ctx, product)
}

// ListProducts returns products matching the filter
func (s *CatalogService) ListProducts(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, NewProductResponse(&products[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CreateRawMaterial adds a new raw material
func (s *CatalogService) CreateRawMaterial(ctx context.Context, req CreateRawMaterialRequest) (*RawMaterialResponse, error) {
	material, err := catalog.NewRawMaterial(req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	if err := s.materialRepo.Save(ctx, material); err != nil {
		return nil, err
	}
	resp := NewRawMaterialResponse(material)
	return &resp, nil
}

// ListRawMaterials returns raw materials matching the filter
func (s *CatalogService) ListRawMaterials(ctx context.Context, filter shared.Filter) ([]RawMaterialResponse, error) {
	materials, err := s.materialRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RawMaterialResponse, 0, len(materials))
	for i := range materials {
		responses = append(responses, NewRawMaterialResponse(&materials[i]))
	}
	return responses, nil
}

// ArchiveRawMaterial soft-deletes a raw material
func (s *CatalogService) ArchiveRawMaterial(ctx context.Context, id uuid.UUID) error {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	material.Archive()
	return s.materialRepo.Save(ctx, material)
}

// CreateDiscount adds a reusable named discount
func (s *CatalogService) CreateDiscount(ctx context.Context, req CreateDiscountRequest) (*DiscountResponse, error) {
	discount, err := catalog.NewDiscount(req.Name, req.Percent)
	if err != nil {
		return nil, err
	}
	if err := s.discountRepo.Save(ctx, discount); err != nil {
		return nil, err
	}
	resp := NewDiscountResponse(discount)
	return &resp, nil
}

// ListDiscounts returns discounts matching the filter
func (s *CatalogService) ListDiscounts(ctx context.Context, filter shared.Filter) ([]DiscountResponse, error) {
	discounts, err := s.discountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]DiscountResponse, 0, len(discounts))
	for i := range discounts {
		responses = append(responses, NewDiscountResponse(&discounts[i]))
	}
	return responses, nil
}

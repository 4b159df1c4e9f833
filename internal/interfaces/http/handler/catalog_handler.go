package handler

import (
	"net/http"

	appcatalog "github.com/foodworks/backoffice/internal/application/catalog"
	"github.com/foodworks/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles product, raw material and discount HTTP requests
type CatalogHandler struct {
	BaseHandler
	catalogService *appcatalog.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *appcatalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.PUT("/:id/prices", h.UpdateProductPrices)
		products.DELETE("/:id", h.ArchiveProduct)
	}

	materials := rg.Group("/raw-materials")
	{
		materials.POST("", h.CreateRawMaterial)
		materials.GET("", h.ListRawMaterials)
		materials.DELETE("/:id", h.ArchiveRawMaterial)
	}

	discounts := rg.Group("/discounts")
	{
		discounts.POST("", h.CreateDiscount)
		discounts.GET("", h.ListDiscounts)
	}
}

// CreateProduct registers a new sellable product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// ListProducts returns a paginated view of the product catalog
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateProductPrices changes a product's unit and SRP prices
func (h *CatalogHandler) UpdateProductPrices(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a valid UUID")
		return
	}

	var req appcatalog.UpdateProductPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.catalogService.UpdateProductPrices(c.Request.Context(), id, req.UnitPrice, req.SRPPrice); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Prices updated"})
}

// ArchiveProduct retires a product from the catalog
func (h *CatalogHandler) ArchiveProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a valid UUID")
		return
	}

	if err := h.catalogService.ArchiveProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateRawMaterial registers a new raw material
func (h *CatalogHandler) CreateRawMaterial(c *gin.Context) {
	var req appcatalog.CreateRawMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	material, err := h.catalogService.CreateRawMaterial(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, material)
}

// ListRawMaterials returns the raw material catalog
func (h *CatalogHandler) ListRawMaterials(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	materials, err := h.catalogService.ListRawMaterials(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, materials)
}

// ArchiveRawMaterial retires a raw material from the catalog
func (h *CatalogHandler) ArchiveRawMaterial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a valid UUID")
		return
	}

	if err := h.catalogService.ArchiveRawMaterial(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateDiscount registers a reusable named discount
func (h *CatalogHandler) CreateDiscount(c *gin.Context) {
	var req appcatalog.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	discount, err := h.catalogService.CreateDiscount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, discount)
}

// ListDiscounts returns the named discount catalog
func (h *CatalogHandler) ListDiscounts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	discounts, err := h.catalogService.ListDiscounts(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, discounts)
}

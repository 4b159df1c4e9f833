package handler

import (
	"net/http"

	appinventory "github.com/foodworks/backoffice/internal/application/inventory"
	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler handles inventory record, batch and withdrawal HTTP requests
type InventoryHandler struct {
	BaseHandler
	inventoryService  *appinventory.InventoryService
	withdrawalService *appinventory.WithdrawalService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	inventoryService *appinventory.InventoryService,
	withdrawalService *appinventory.WithdrawalService,
) *InventoryHandler {
	return &InventoryHandler{
		inventoryService:  inventoryService,
		withdrawalService: withdrawalService,
	}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		records := inv.Group("/records")
		{
			records.GET("", h.ListRecords)
			records.GET("/low-stock", h.ListLowStock)
			records.GET("/:item_type/:item_id", h.GetRecord)
			records.PUT("/:item_type/:item_id/threshold", h.SetThreshold)
		}

		batches := inv.Group("/batches")
		{
			batches.POST("", h.CreateBatch)
			batches.GET("/:item_type/:item_id", h.ListBatches)
		}

		withdrawals := inv.Group("/withdrawals")
		{
			withdrawals.POST("", h.SubmitWithdrawal)
			withdrawals.GET("", h.ListWithdrawals)
		}
	}
}

// itemClassParam reads and validates the item_type path parameter
func itemClassParam(c *gin.Context) (inventory.ItemType, bool) {
	itemType := inventory.ItemType(c.Param("item_type"))
	return itemType, itemType.IsValid()
}

// ListRecords returns a paginated view of one item class's stock records
func (h *InventoryHandler) ListRecords(c *gin.Context) {
	itemType := inventory.ItemType(c.Query("item_type"))
	if !itemType.IsValid() {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "item_type must be PRODUCT or RAW_MATERIAL")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.inventoryService.ListRecords(c.Request.Context(), itemType, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListLowStock returns every record sitting at or below its alert threshold
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	records, err := h.inventoryService.ListLowStock(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// GetRecord returns one item's stock record
func (h *InventoryHandler) GetRecord(c *gin.Context) {
	itemType, ok := itemClassParam(c)
	if !ok {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "item_type must be PRODUCT or RAW_MATERIAL")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "item_id must be a valid UUID")
		return
	}

	record, err := h.inventoryService.GetRecord(c.Request.Context(), itemType, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// SetThreshold changes an item's low-stock alert threshold
func (h *InventoryHandler) SetThreshold(c *gin.Context) {
	itemType, ok := itemClassParam(c)
	if !ok {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "item_type must be PRODUCT or RAW_MATERIAL")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "item_id must be a valid UUID")
		return
	}

	var req appinventory.SetThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.inventoryService.SetThreshold(c.Request.Context(), itemType, itemID, req.Threshold); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Threshold updated"})
}

// CreateBatch registers a new stock batch and restocks the owning record
func (h *InventoryHandler) CreateBatch(c *gin.Context) {
	var req appinventory.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	batch, err := h.inventoryService.CreateBatch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, batch)
}

// ListBatches returns an item's live batches ordered by expiration date
func (h *InventoryHandler) ListBatches(c *gin.Context) {
	itemType, ok := itemClassParam(c)
	if !ok {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "item_type must be PRODUCT or RAW_MATERIAL")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "item_id must be a valid UUID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	batches, err := h.inventoryService.ListBatches(c.Request.Context(), itemType, itemID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batches)
}

// SubmitWithdrawal processes a multi-line stock withdrawal. Lines succeed or
// fail independently, so a partial failure still returns 200 with per-line
// results.
func (h *InventoryHandler) SubmitWithdrawal(c *gin.Context) {
	var req appinventory.SubmitWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.withdrawalService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListWithdrawals returns a paginated view of withdrawal history
func (h *InventoryHandler) ListWithdrawals(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.inventoryService.ListWithdrawals(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

package handler

import (
	"net/http"

	apptrade "github.com/foodworks/backoffice/internal/application/trade"
	"github.com/foodworks/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles sales order HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService *apptrade.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *apptrade.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/payment", h.UpdatePayment)
		orders.PUT("/:id/lines/:line_id", h.UpdateLine)
		orders.DELETE("/:id/lines/:line_id", h.DeleteLine)
		orders.DELETE("/:id", h.DeleteOrder)
	}
}

func orderIDParam(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// ListOrders returns a paginated view of orders, newest order number first
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetOrder returns one order with its lines and computed total
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a valid UUID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdatePayment changes an order's payment status. The sales ledger entry is
// reconciled in the same transaction.
func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a valid UUID")
		return
	}

	var req apptrade.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.orderService.UpdatePayment(c.Request.Context(), orderID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Payment updated"})
}

// UpdateLine edits one order line's quantity or pricing
func (h *OrderHandler) UpdateLine(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a valid UUID")
		return
	}

	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "line_id must be a valid UUID")
		return
	}

	var req apptrade.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.orderService.UpdateLine(c.Request.Context(), orderID, lineID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Line updated"})
}

// DeleteLine removes one line from an order and returns its stock
func (h *OrderHandler) DeleteLine(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a valid UUID")
		return
	}

	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "line_id must be a valid UUID")
		return
	}

	if err := h.orderService.DeleteLine(c.Request.Context(), orderID, lineID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteOrder archives an order, returns all its stock and removes its
// ledger entry
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a valid UUID")
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	"net/http"

	appnotification "github.com/foodworks/backoffice/internal/application/notification"
	"github.com/foodworks/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler handles stock alert notification HTTP requests
type NotificationHandler struct {
	BaseHandler
	notificationService *appnotification.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *appnotification.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.CountUnread)
		notifications.PUT("/:id/read", h.MarkRead)
	}
}

// List returns notifications, optionally only unread ones
func (h *NotificationHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	onlyUnread := c.Query("unread") == "true"

	notifications, err := h.notificationService.List(c.Request.Context(), onlyUnread, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notifications)
}

// CountUnread returns the number of unread notifications
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	count, err := h.notificationService.CountUnread(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"count": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a valid UUID")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Notification marked as read"})
}

package handler

import (
	"net/http"
	"time"

	"github.com/foodworks/backoffice/internal/infrastructure/persistence"
	"github.com/foodworks/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and readiness HTTP requests
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	appName   string
	version   string
	startedAt time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *persistence.Database, appName, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		appName:   appName,
		version:   version,
		startedAt: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health reports liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"app":     h.appName,
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready reports readiness, checking the database connection
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "database unavailable")
		return
	}

	h.Success(c, gin.H{"status": "ready"})
}

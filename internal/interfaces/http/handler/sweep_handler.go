package handler

import (
	"net/http"
	"time"

	appinventory "github.com/foodworks/backoffice/internal/application/inventory"
	"github.com/foodworks/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SweepHandler exposes the expiration sweep and backlog repair as admin
// endpoints. Both operations are idempotent, so retrying a request is safe.
type SweepHandler struct {
	BaseHandler
	sweepService   *appinventory.SweepService
	backlogService *appinventory.BacklogService
}

// NewSweepHandler creates a new sweep handler
func NewSweepHandler(
	sweepService *appinventory.SweepService,
	backlogService *appinventory.BacklogService,
) *SweepHandler {
	return &SweepHandler{
		sweepService:   sweepService,
		backlogService: backlogService,
	}
}

// RegisterRoutes registers sweep admin routes
func (h *SweepHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.POST("/sweep", h.RunSweep)
		admin.POST("/sweep/repair", h.RunRepair)
	}
}

// sweepDay reads the optional date query parameter, defaulting to today
func sweepDay(c *gin.Context) (time.Time, error) {
	if raw := c.Query("date"); raw != "" {
		return time.Parse("2006-01-02", raw)
	}
	return time.Now(), nil
}

// RunSweep triggers an expiration sweep for the given day
func (h *SweepHandler) RunSweep(c *gin.Context) {
	day, err := sweepDay(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "date must be a YYYY-MM-DD date")
		return
	}

	stats, err := h.sweepService.Sweep(c.Request.Context(), day)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// RunRepair settles expired batches whose stock deduction was missed
func (h *SweepHandler) RunRepair(c *gin.Context) {
	day, err := sweepDay(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "date must be a YYYY-MM-DD date")
		return
	}

	stats, err := h.backlogService.Repair(c.Request.Context(), day)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

package handler

import (
	"net/http"
	"time"

	appfinance "github.com/foodworks/backoffice/internal/application/finance"
	"github.com/foodworks/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles sales and expense ledger HTTP requests
type LedgerHandler struct {
	BaseHandler
	ledgerService *appfinance.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *appfinance.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.POST("/entries", h.CreateEntry)
		ledger.GET("/entries", h.ListEntries)
		ledger.PUT("/entries/:id", h.UpdateEntry)
		ledger.DELETE("/entries/:id", h.DeleteEntry)
		ledger.GET("/summary", h.Summarize)
	}
}

// dateRange reads the from/to query parameters as YYYY-MM-DD dates. A missing
// range defaults to the current month.
func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return from, to, nil
}

// CreateEntry records a manual ledger entry
func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	var req appfinance.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// ListEntries returns ledger entries within a date range
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "from and to must be YYYY-MM-DD dates")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), from, to, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// UpdateEntry edits a manual ledger entry. Reconciled sales entries reject
// edits.
func (h *LedgerHandler) UpdateEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a valid UUID")
		return
	}

	var req appfinance.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.ledgerService.UpdateEntry(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Entry updated"})
}

// DeleteEntry removes a manual ledger entry
func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "id must be a valid UUID")
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Summarize returns sales, expense and net totals for a date range
func (h *LedgerHandler) Summarize(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "from and to must be YYYY-MM-DD dates")
		return
	}

	summary, err := h.ledgerService.Summarize(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

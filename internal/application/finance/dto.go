package finance

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest represents a request to record a manual ledger entry
type CreateEntryRequest struct {
	Kind        string          `json:"kind" binding:"required"`
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// UpdateEntryRequest represents a request to edit a manual ledger entry
type UpdateEntryRequest struct {
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// LedgerEntryResponse is the API view of a ledger entry
type LedgerEntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Kind        string          `json:"kind"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	OrderID     *uuid.UUID      `json:"order_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewLedgerEntryResponse maps a domain entry to its API view
func NewLedgerEntryResponse(entry *finance.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          entry.ID,
		Kind:        entry.Kind.String(),
		Category:    entry.Category,
		Amount:      entry.Amount.Amount(),
		Date:        entry.Date,
		Description: entry.Description,
		OrderID:     entry.OrderID,
		CreatedAt:   entry.CreatedAt,
	}
}

// LedgerSummaryResponse totals a date range of the ledger
type LedgerSummaryResponse struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Sales    decimal.Decimal `json:"sales"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

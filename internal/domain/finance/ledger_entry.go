package finance

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/foodworks/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// EntryKind separates money coming in from money going out
type EntryKind string

const (
	KindSales   EntryKind = "SALES"
	KindExpense EntryKind = "EXPENSE"
)

// IsValid checks if the kind is a valid EntryKind
func (k EntryKind) IsValid() bool {
	return k == KindSales || k == KindExpense
}

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	return string(k)
}

// LedgerEntry is one row of the daily sales and expense book. Sales entries
// produced by order reconciliation carry the originating order's ID so the
// entry can be found and kept in lockstep as the order changes; at most one
// such entry may exist per order.
type LedgerEntry struct {
	shared.BaseAggregateRoot
	Kind        EntryKind         `gorm:"size:10;not null;index"`
	Category    string            `gorm:"size:100;not null"`
	Amount      valueobject.Money `gorm:"type:decimal(18,2);not null"`
	Date        time.Time         `gorm:"type:date;not null;index"`
	Description string            `gorm:"size:500"`
	OrderID     *uuid.UUID        `gorm:"type:uuid;uniqueIndex:idx_ledger_order,where:order_id IS NOT NULL"`
}

// TableName returns the table name for GORM
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// NewLedgerEntry creates a manual ledger entry
func NewLedgerEntry(kind EntryKind, category string, amount valueobject.Money, date time.Time, description string) (*LedgerEntry, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_KIND", "Entry kind must be SALES or EXPENSE")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	return &LedgerEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Category:          category,
		Amount:            amount,
		Date:              date,
		Description:       description,
	}, nil
}

// NewSalesEntryForOrder creates the reconciled sales entry for an order
func NewSalesEntryForOrder(orderID uuid.UUID, amount valueobject.Money, date time.Time, description string) *LedgerEntry {
	entry := &LedgerEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              KindSales,
		Category:          "Sales",
		Amount:            amount,
		Date:              date,
		Description:       description,
		OrderID:           &orderID,
	}
	return entry
}

// UpdateAmount rewrites the entry's amount and description in place
func (e *LedgerEntry) UpdateAmount(amount valueobject.Money, description string) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	e.Amount = amount
	e.Description = description
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// Update rewrites a manual entry's mutable fields
func (e *LedgerEntry) Update(category string, amount valueobject.Money, date time.Time, description string) error {
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	e.Category = category
	e.Amount = amount
	e.Date = date
	e.Description = description
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// IsReconciled reports whether the entry is bound to an order
func (e *LedgerEntry) IsReconciled() bool {
	return e.OrderID != nil
}

package inventory

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryRecord holds the aggregate on-hand stock for one product or raw
// material. It is a cached running total maintained incrementally by every
// withdrawal, restock and sweep deduction - never recomputed from history.
type InventoryRecord struct {
	shared.BaseAggregateRoot
	ItemType   ItemType        `gorm:"size:20;not null;uniqueIndex:idx_inventory_records_item,priority:1"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_records_item,priority:2"`
	TotalStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Threshold  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// NewInventoryRecord creates a new inventory record for an item
func NewInventoryRecord(itemType ItemType, itemID uuid.UUID) (*InventoryRecord, error) {
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Item type must be PRODUCT or RAW_MATERIAL")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}

	return &InventoryRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemType:          itemType,
		ItemID:            itemID,
		TotalStock:        decimal.Zero,
		Threshold:         decimal.Zero,
	}, nil
}

// CanFulfill returns true if the current stock can cover the requested quantity
func (r *InventoryRecord) CanFulfill(quantity decimal.Decimal) bool {
	return r.TotalStock.GreaterThanOrEqual(quantity)
}

// Deduct removes stock for a withdrawal. It is strict: the full quantity must
// be available or the deduction is rejected with ErrInsufficientStock.
// After the deduction the threshold post-condition is checked and a
// LowStockEvent raised when stock has dropped to or below the threshold.
func (r *InventoryRecord) Deduct(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduction quantity must be positive")
	}
	if !r.CanFulfill(quantity) {
		return shared.ErrInsufficientStock
	}

	r.TotalStock = r.TotalStock.Sub(quantity)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.checkThreshold()
	return nil
}

// DeductFlooring removes up to quantity from stock, flooring the total at
// zero. This is the expiration-sweep path: an expired batch may be larger
// than the cached total, and the sweep must never push it negative.
// Returns the amount actually removed.
func (r *InventoryRecord) DeductFlooring(quantity decimal.Decimal) (decimal.Decimal, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Deduction quantity must be positive")
	}

	deducted := quantity
	if quantity.GreaterThan(r.TotalStock) {
		deducted = r.TotalStock
		r.TotalStock = decimal.Zero
	} else {
		r.TotalStock = r.TotalStock.Sub(quantity)
	}
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.checkThreshold()
	return deducted, nil
}

// Restock adds stock back, from a new batch or a reverted withdrawal line
func (r *InventoryRecord) Restock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}

	r.TotalStock = r.TotalStock.Add(quantity)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// SetThreshold sets the low-stock alert threshold
func (r *InventoryRecord) SetThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Threshold cannot be negative")
	}
	r.Threshold = threshold
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// IsBelowThreshold returns true if stock is at or below the alert threshold
func (r *InventoryRecord) IsBelowThreshold() bool {
	return r.Threshold.GreaterThan(decimal.Zero) && r.TotalStock.LessThanOrEqual(r.Threshold)
}

// checkThreshold is the explicit post-condition on every deduction: crossing
// the threshold raises a LowStockEvent for the application layer to turn into
// a notification. A zero threshold disables the alert.
func (r *InventoryRecord) checkThreshold() {
	if r.IsBelowThreshold() {
		r.AddDomainEvent(NewLowStockEvent(r))
	}
}

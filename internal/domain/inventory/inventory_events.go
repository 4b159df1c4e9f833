package inventory

import (
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the inventory domain
const (
	EventTypeLowStock     = "inventory.low_stock"
	EventTypeBatchExpired = "inventory.batch_expired"
	EventTypeStockDeduct  = "inventory.stock_deducted"
)

// LowStockEvent is raised when a deduction drops an item's stock to or below
// its alert threshold
type LowStockEvent struct {
	shared.BaseDomainEvent
	ItemType   ItemType        `json:"item_type"`
	ItemID     uuid.UUID       `json:"item_id"`
	TotalStock decimal.Decimal `json:"total_stock"`
	Threshold  decimal.Decimal `json:"threshold"`
}

// NewLowStockEvent creates a new LowStockEvent
func NewLowStockEvent(record *InventoryRecord) *LowStockEvent {
	return &LowStockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLowStock, "InventoryRecord", record.ID),
		ItemType:        record.ItemType,
		ItemID:          record.ItemID,
		TotalStock:      record.TotalStock,
		Threshold:       record.Threshold,
	}
}

// BatchExpiredEvent is raised when the sweep processes an expired batch
type BatchExpiredEvent struct {
	shared.BaseDomainEvent
	ItemType    ItemType        `json:"item_type"`
	OwnerItemID uuid.UUID       `json:"owner_item_id"`
	BatchID     uuid.UUID       `json:"batch_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// NewBatchExpiredEvent creates a new BatchExpiredEvent
func NewBatchExpiredEvent(batch *Batch, quantity decimal.Decimal) *BatchExpiredEvent {
	return &BatchExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchExpired, "Batch", batch.ID),
		ItemType:        batch.ItemType,
		OwnerItemID:     batch.OwnerItemID,
		BatchID:         batch.ID,
		Quantity:        quantity,
	}
}

// StockDeductedEvent is raised when stock is removed for a withdrawal
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	ItemType ItemType         `json:"item_type"`
	ItemID   uuid.UUID        `json:"item_id"`
	Quantity decimal.Decimal  `json:"quantity"`
	Reason   WithdrawalReason `json:"reason"`
}

// NewStockDeductedEvent creates a new StockDeductedEvent
func NewStockDeductedEvent(record *InventoryRecord, quantity decimal.Decimal, reason WithdrawalReason) *StockDeductedEvent {
	return &StockDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDeduct, "InventoryRecord", record.ID),
		ItemType:        record.ItemType,
		ItemID:          record.ItemID,
		Quantity:        quantity,
		Reason:          reason,
	}
}

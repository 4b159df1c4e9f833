package inventory

import (
	"context"
	"time"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryRecordRepository defines the interface for inventory record persistence
type InventoryRecordRepository interface {
	// FindByID finds an inventory record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryRecord, error)

	// FindByItem finds the inventory record for an item
	FindByItem(ctx context.Context, itemType ItemType, itemID uuid.UUID) (*InventoryRecord, error)

	// FindAll finds all inventory records matching the filter
	FindAll(ctx context.Context, itemType ItemType, filter shared.Filter) ([]InventoryRecord, error)

	// FindBelowThreshold finds records at or below their alert threshold
	FindBelowThreshold(ctx context.Context, filter shared.Filter) ([]InventoryRecord, error)

	// GetOrCreate gets the existing record for an item or creates a zeroed one
	GetOrCreate(ctx context.Context, itemType ItemType, itemID uuid.UUID) (*InventoryRecord, error)

	// Save creates or updates an inventory record
	Save(ctx context.Context, record *InventoryRecord) error

	// DeductStock atomically decrements total_stock by quantity, guarded so
	// the row is only touched when enough stock is present. Returns
	// shared.ErrInsufficientStock when the guard rejects the update.
	// This is the mutation every withdrawal line must go through so
	// concurrent submissions never read-modify-write a stale total.
	DeductStock(ctx context.Context, itemType ItemType, itemID uuid.UUID, quantity decimal.Decimal) error

	// DeductStockFlooring atomically decrements total_stock by quantity,
	// flooring the result at zero. Sweep-path counterpart of DeductStock.
	DeductStockFlooring(ctx context.Context, itemType ItemType, itemID uuid.UUID, quantity decimal.Decimal) error

	// RestockAtomic atomically increments total_stock by quantity
	RestockAtomic(ctx context.Context, itemType ItemType, itemID uuid.UUID, quantity decimal.Decimal) error

	// Count counts inventory records for an item class
	Count(ctx context.Context, itemType ItemType, filter shared.Filter) (int64, error)
}

// BatchRepository defines the interface for batch persistence
type BatchRepository interface {
	// FindByID finds a batch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)

	// FindByOwner finds all batches for an item
	FindByOwner(ctx context.Context, itemType ItemType, ownerItemID uuid.UUID, filter shared.Filter) ([]Batch, error)

	// FindPendingSweep finds batches of one item class whose expiration date
	// has passed but which have not been marked expired yet
	FindPendingSweep(ctx context.Context, itemType ItemType, today time.Time) ([]Batch, error)

	// FindExpiredWithStock finds already-expired, unarchived batches that
	// still hold a positive quantity (backlog repair input)
	FindExpiredWithStock(ctx context.Context, itemType ItemType, today time.Time) ([]Batch, error)

	// Save creates or updates a batch
	Save(ctx context.Context, batch *Batch) error

	// Count counts batches for an item class
	Count(ctx context.Context, itemType ItemType, filter shared.Filter) (int64, error)
}

// WithdrawalRepository defines the interface for withdrawal persistence
type WithdrawalRepository interface {
	// FindByID finds a withdrawal by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Withdrawal, error)

	// FindByOrder finds all non-archived lines of an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Withdrawal, error)

	// FindByItem finds withdrawals for an item
	FindByItem(ctx context.Context, itemType ItemType, itemID uuid.UUID, filter shared.Filter) ([]Withdrawal, error)

	// FindAll finds withdrawals matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Withdrawal, error)

	// ExistsExpirationForBatch reports whether an EXPIRED withdrawal already
	// references the batch. Used by the backlog repair scan to detect
	// batches the sweep never recorded; the check is immune to the sweep
	// running days after the batch's expiration date.
	ExistsExpirationForBatch(ctx context.Context, batchID uuid.UUID) (bool, error)

	// Create creates a new withdrawal
	Create(ctx context.Context, withdrawal *Withdrawal) error

	// Save updates a withdrawal
	Save(ctx context.Context, withdrawal *Withdrawal) error

	// Count counts withdrawals matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

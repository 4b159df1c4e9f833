package inventory

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch represents one dated lot of a product or raw material. Its quantity
// and expiration date are the source of truth for what stock exists and when
// it decays; the sweep converts expired batches into inventory deductions.
type Batch struct {
	shared.BaseAggregateRoot
	ItemType       ItemType        `gorm:"size:20;not null;index:idx_batches_item,priority:1"`
	OwnerItemID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_batches_item,priority:2"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpirationDate *time.Time      `gorm:"index"`
	IsExpired      bool            `gorm:"not null;default:false;index"`
	IsArchived     bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "batches"
}

// NewBatch creates a new batch for an item
func NewBatch(itemType ItemType, ownerItemID uuid.UUID, quantity decimal.Decimal, expirationDate *time.Time) (*Batch, error) {
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Item type must be PRODUCT or RAW_MATERIAL")
	}
	if ownerItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Owner item ID cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Batch quantity cannot be negative")
	}

	return &Batch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemType:          itemType,
		OwnerItemID:       ownerItemID,
		Quantity:          quantity,
		ExpirationDate:    expirationDate,
	}, nil
}

// PendingSweep returns true if the batch has passed its expiration date but
// has not been processed by the sweep yet
func (b *Batch) PendingSweep(today time.Time) bool {
	if b.IsExpired || b.ExpirationDate == nil {
		return false
	}
	return !b.ExpirationDate.After(today)
}

// MarkExpired marks the batch as processed by the sweep and returns the
// quantity captured at that moment. The transition is one-way: an already
// expired batch returns zero so it can never be deducted twice.
func (b *Batch) MarkExpired() decimal.Decimal {
	if b.IsExpired {
		return decimal.Zero
	}
	b.IsExpired = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return b.Quantity
}

// ZeroAndArchive empties the batch and archives it. Used by the backlog
// repair procedure after its quantity has been deducted and recorded.
func (b *Batch) ZeroAndArchive() {
	b.Quantity = decimal.Zero
	b.IsExpired = true
	b.IsArchived = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// HasStock returns true if the batch still holds a positive quantity
func (b *Batch) HasStock() bool {
	return b.Quantity.GreaterThan(decimal.Zero)
}

package inventory

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalReason classifies why stock left inventory
type WithdrawalReason string

const (
	ReasonSold     WithdrawalReason = "SOLD"
	ReasonExpired  WithdrawalReason = "EXPIRED"
	ReasonDamaged  WithdrawalReason = "DAMAGED"
	ReasonReturned WithdrawalReason = "RETURNED"
	ReasonOthers   WithdrawalReason = "OTHERS"
)

// IsValid checks if the reason is a valid WithdrawalReason
func (r WithdrawalReason) IsValid() bool {
	switch r {
	case ReasonSold, ReasonExpired, ReasonDamaged, ReasonReturned, ReasonOthers:
		return true
	}
	return false
}

// String returns the string representation of WithdrawalReason
func (r WithdrawalReason) String() string {
	return string(r)
}

// PriceType selects which catalog price a sold line is valued at
type PriceType string

const (
	PriceTypeUnit PriceType = "UNIT"
	PriceTypeSRP  PriceType = "SRP"
)

// IsValid checks if the price type is valid
func (p PriceType) IsValid() bool {
	return p == PriceTypeUnit || p == PriceTypeSRP
}

// Withdrawal is one stock-decreasing event: a sale line, an expired batch,
// damage, a return, or a write-off. Sold lines belonging to an order carry
// per-line pricing fields and reference the owning Order by ID.
type Withdrawal struct {
	shared.BaseAggregateRoot
	ItemType              ItemType         `gorm:"size:20;not null;index:idx_withdrawals_item,priority:1"`
	ItemID                uuid.UUID        `gorm:"type:uuid;not null;index:idx_withdrawals_item,priority:2"`
	Quantity              decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Reason                WithdrawalReason `gorm:"size:20;not null;index"`
	Date                  time.Time        `gorm:"not null;index"`
	IsArchived            bool             `gorm:"not null;default:false;index"`
	BatchID               *uuid.UUID       `gorm:"type:uuid;index"`
	OrderID               *uuid.UUID       `gorm:"type:uuid;index"`
	PriceType             *PriceType       `gorm:"size:10"`
	CustomPrice           *decimal.Decimal `gorm:"type:decimal(18,2)"`
	DiscountID            *uuid.UUID       `gorm:"type:uuid"`
	CustomDiscountPercent *decimal.Decimal `gorm:"type:decimal(5,2)"`
}

// TableName returns the table name for GORM
func (Withdrawal) TableName() string {
	return "withdrawals"
}

// NewWithdrawal creates a plain (non-order) withdrawal
func NewWithdrawal(itemType ItemType, itemID uuid.UUID, quantity decimal.Decimal, reason WithdrawalReason, date time.Time) (*Withdrawal, error) {
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Item type must be PRODUCT or RAW_MATERIAL")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Withdrawal quantity must be positive")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Withdrawal reason is not valid")
	}

	return &Withdrawal{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemType:          itemType,
		ItemID:            itemID,
		Quantity:          quantity,
		Reason:            reason,
		Date:              date,
	}, nil
}

// NewExpirationWithdrawal records the deduction of one expired batch. The
// batch reference is what lets the backlog repair scan tell a swept batch
// apart from one the sweep never recorded, independent of when the sweep
// actually ran.
func NewExpirationWithdrawal(batch *Batch, quantity decimal.Decimal, date time.Time) (*Withdrawal, error) {
	w, err := NewWithdrawal(batch.ItemType, batch.OwnerItemID, quantity, ReasonExpired, date)
	if err != nil {
		return nil, err
	}
	w.BatchID = &batch.ID
	return w, nil
}

// LinePricing carries the per-line pricing fields of a sold order line.
// PriceType and CustomPrice are mutually exclusive modes.
type LinePricing struct {
	PriceType             *PriceType
	CustomPrice           *decimal.Decimal
	DiscountID            *uuid.UUID
	CustomDiscountPercent *decimal.Decimal
}

// Validate checks the mutual-exclusion and range rules for line pricing
func (p LinePricing) Validate() error {
	if p.PriceType != nil && p.CustomPrice != nil {
		return shared.NewDomainError("CONFLICTING_PRICING", "Price type and custom price are mutually exclusive")
	}
	if p.PriceType == nil && p.CustomPrice == nil {
		return shared.NewDomainError("MISSING_PRICING", "A sold order line needs a price type or a custom price")
	}
	if p.PriceType != nil && !p.PriceType.IsValid() {
		return shared.NewDomainError("INVALID_PRICE_TYPE", "Price type must be UNIT or SRP")
	}
	if p.CustomPrice != nil && p.CustomPrice.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Custom price must be positive")
	}
	if p.DiscountID != nil && p.CustomDiscountPercent != nil {
		return shared.NewDomainError("CONFLICTING_DISCOUNT", "Discount reference and custom discount are mutually exclusive")
	}
	if p.CustomDiscountPercent != nil &&
		(p.CustomDiscountPercent.IsNegative() || p.CustomDiscountPercent.GreaterThan(decimal.NewFromInt(100))) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Custom discount percent must be between 0 and 100")
	}
	return nil
}

// NewOrderLine creates a sold withdrawal line attached to an order
func NewOrderLine(itemID uuid.UUID, quantity decimal.Decimal, orderID uuid.UUID, pricing LinePricing, date time.Time) (*Withdrawal, error) {
	w, err := NewWithdrawal(ItemTypeProduct, itemID, quantity, ReasonSold, date)
	if err != nil {
		return nil, err
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if err := pricing.Validate(); err != nil {
		return nil, err
	}

	w.OrderID = &orderID
	w.PriceType = pricing.PriceType
	w.CustomPrice = pricing.CustomPrice
	w.DiscountID = pricing.DiscountID
	w.CustomDiscountPercent = pricing.CustomDiscountPercent
	return w, nil
}

// UpdateQuantity changes the line quantity and returns the delta against the
// previous value (positive = more stock withdrawn, negative = stock returned)
func (w *Withdrawal) UpdateQuantity(quantity decimal.Decimal) (decimal.Decimal, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Withdrawal quantity must be positive")
	}
	delta := quantity.Sub(w.Quantity)
	w.Quantity = quantity
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return delta, nil
}

// UpdatePricing replaces the line's pricing fields
func (w *Withdrawal) UpdatePricing(pricing LinePricing) error {
	if w.OrderID == nil {
		return shared.NewDomainError("NOT_ORDER_LINE", "Only order lines carry pricing")
	}
	if err := pricing.Validate(); err != nil {
		return err
	}
	w.PriceType = pricing.PriceType
	w.CustomPrice = pricing.CustomPrice
	w.DiscountID = pricing.DiscountID
	w.CustomDiscountPercent = pricing.CustomDiscountPercent
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// Archive soft-deletes the withdrawal
func (w *Withdrawal) Archive() {
	w.IsArchived = true
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// BelongsToOrder returns true if the withdrawal is a line of the given order
func (w *Withdrawal) BelongsToOrder(orderID uuid.UUID) bool {
	return w.OrderID != nil && *w.OrderID == orderID
}

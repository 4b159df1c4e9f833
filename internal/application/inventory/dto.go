package inventory

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Withdrawal DTOs ====================

// SubmitWithdrawalRequest represents a multi-line stock withdrawal submission.
// Channel, customer and payment fields are only meaningful for SOLD
// withdrawals; when Channel is set the lines are grouped under a new order.
type SubmitWithdrawalRequest struct {
	Reason        string                 `json:"reason" binding:"required"`
	Date          time.Time              `json:"date" binding:"required"`
	Channel       *string                `json:"channel"`
	CustomerName  string                 `json:"customer_name" binding:"max=150"`
	PaymentStatus *string                `json:"payment_status"`
	PaidAmount    *decimal.Decimal       `json:"paid_amount"`
	Lines         []WithdrawalLineInput  `json:"lines" binding:"required,min=1,dive"`
}

// WithdrawalLineInput represents one line of a withdrawal submission
type WithdrawalLineInput struct {
	ItemType              string           `json:"item_type" binding:"required"`
	ItemID                uuid.UUID        `json:"item_id" binding:"required"`
	Quantity              decimal.Decimal  `json:"quantity" binding:"required"`
	PriceType             *string          `json:"price_type"`
	CustomPrice           *decimal.Decimal `json:"custom_price"`
	DiscountID            *uuid.UUID       `json:"discount_id"`
	CustomDiscountPercent *decimal.Decimal `json:"custom_discount_percent"`
}

// WithdrawalLineResult reports the outcome of one submitted line. Lines
// succeed or fail independently: an insufficient-stock rejection on one line
// never rolls back the others.
type WithdrawalLineResult struct {
	ItemID       uuid.UUID  `json:"item_id"`
	WithdrawalID *uuid.UUID `json:"withdrawal_id,omitempty"`
	Success      bool       `json:"success"`
	Error        string     `json:"error,omitempty"`
}

// SubmitWithdrawalResult reports the outcome of a whole submission
type SubmitWithdrawalResult struct {
	OrderID     *uuid.UUID             `json:"order_id,omitempty"`
	OrderNumber *int64                 `json:"order_number,omitempty"`
	Lines       []WithdrawalLineResult `json:"lines"`
	Succeeded   int                    `json:"succeeded"`
	Failed      int                    `json:"failed"`
}

// ==================== Record / Batch DTOs ====================

// CreateBatchRequest represents a request to register a new stock batch
type CreateBatchRequest struct {
	ItemType       string          `json:"item_type" binding:"required"`
	ItemID         uuid.UUID       `json:"item_id" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	ExpirationDate *time.Time      `json:"expiration_date"`
}

// SetThresholdRequest represents a request to change an item's low-stock threshold
type SetThresholdRequest struct {
	Threshold decimal.Decimal `json:"threshold" binding:"required"`
}

// InventoryRecordResponse is the API view of an inventory record
type InventoryRecordResponse struct {
	ID         uuid.UUID       `json:"id"`
	ItemType   string          `json:"item_type"`
	ItemID     uuid.UUID       `json:"item_id"`
	TotalStock decimal.Decimal `json:"total_stock"`
	Threshold  decimal.Decimal `json:"threshold"`
	LowStock   bool            `json:"low_stock"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewInventoryRecordResponse maps a domain record to its API view
func NewInventoryRecordResponse(record *inventory.InventoryRecord) InventoryRecordResponse {
	return InventoryRecordResponse{
		ID:         record.ID,
		ItemType:   record.ItemType.String(),
		ItemID:     record.ItemID,
		TotalStock: record.TotalStock,
		Threshold:  record.Threshold,
		LowStock:   record.IsBelowThreshold(),
		UpdatedAt:  record.UpdatedAt,
	}
}

// BatchResponse is the API view of a batch
type BatchResponse struct {
	ID             uuid.UUID       `json:"id"`
	ItemType       string          `json:"item_type"`
	ItemID         uuid.UUID       `json:"item_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	IsExpired      bool            `json:"is_expired"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewBatchResponse maps a domain batch to its API view
func NewBatchResponse(batch *inventory.Batch) BatchResponse {
	return BatchResponse{
		ID:             batch.ID,
		ItemType:       batch.ItemType.String(),
		ItemID:         batch.OwnerItemID,
		Quantity:       batch.Quantity,
		ExpirationDate: batch.ExpirationDate,
		IsExpired:      batch.IsExpired,
		CreatedAt:      batch.CreatedAt,
	}
}

// WithdrawalResponse is the API view of a withdrawal
type WithdrawalResponse struct {
	ID                    uuid.UUID        `json:"id"`
	ItemType              string           `json:"item_type"`
	ItemID                uuid.UUID        `json:"item_id"`
	Quantity              decimal.Decimal  `json:"quantity"`
	Reason                string           `json:"reason"`
	Date                  time.Time        `json:"date"`
	OrderID               *uuid.UUID       `json:"order_id,omitempty"`
	PriceType             *string          `json:"price_type,omitempty"`
	CustomPrice           *decimal.Decimal `json:"custom_price,omitempty"`
	DiscountID            *uuid.UUID       `json:"discount_id,omitempty"`
	CustomDiscountPercent *decimal.Decimal `json:"custom_discount_percent,omitempty"`
}

// NewWithdrawalResponse maps a domain withdrawal to its API view
func NewWithdrawalResponse(w *inventory.Withdrawal) WithdrawalResponse {
	resp := WithdrawalResponse{
		ID:                    w.ID,
		ItemType:              w.ItemType.String(),
		ItemID:                w.ItemID,
		Quantity:              w.Quantity,
		Reason:                w.Reason.String(),
		Date:                  w.Date,
		OrderID:               w.OrderID,
		CustomPrice:           w.CustomPrice,
		DiscountID:            w.DiscountID,
		CustomDiscountPercent: w.CustomDiscountPercent,
	}
	if w.PriceType != nil {
		priceType := string(*w.PriceType)
		resp.PriceType = &priceType
	}
	return resp
}

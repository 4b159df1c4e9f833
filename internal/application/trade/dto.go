package trade

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdatePaymentRequest represents a request to change an order's payment state
type UpdatePaymentRequest struct {
	Status string           `json:"status" binding:"required"`
	Amount *decimal.Decimal `json:"amount"`
}

// UpdateLineRequest represents a request to change one order line. A nil
// quantity leaves the quantity alone; setting any pricing field replaces the
// line's whole pricing block.
type UpdateLineRequest struct {
	Quantity              *decimal.Decimal `json:"quantity"`
	PriceType             *string          `json:"price_type"`
	CustomPrice           *decimal.Decimal `json:"custom_price"`
	DiscountID            *uuid.UUID       `json:"discount_id"`
	CustomDiscountPercent *decimal.Decimal `json:"custom_discount_percent"`
}

// HasPricing reports whether the request carries any pricing field
func (r UpdateLineRequest) HasPricing() bool {
	return r.PriceType != nil || r.CustomPrice != nil || r.DiscountID != nil || r.CustomDiscountPercent != nil
}

// OrderLineResponse is the API view of one order line
type OrderLineResponse struct {
	ID                    uuid.UUID        `json:"id"`
	ItemID                uuid.UUID        `json:"item_id"`
	Quantity              decimal.Decimal  `json:"quantity"`
	PriceType             *string          `json:"price_type,omitempty"`
	CustomPrice           *decimal.Decimal `json:"custom_price,omitempty"`
	DiscountID            *uuid.UUID       `json:"discount_id,omitempty"`
	CustomDiscountPercent *decimal.Decimal `json:"custom_discount_percent,omitempty"`
}

// NewOrderLineResponse maps a withdrawal line to its API view
func NewOrderLineResponse(w *inventory.Withdrawal) OrderLineResponse {
	resp := OrderLineResponse{
		ID:                    w.ID,
		ItemID:                w.ItemID,
		Quantity:              w.Quantity,
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

// OrderResponse is the API view of an order
type OrderResponse struct {
	ID            uuid.UUID        `json:"id"`
	OrderNumber   int64            `json:"order_number"`
	Channel       string           `json:"channel"`
	CustomerName  string           `json:"customer_name"`
	PaymentStatus string           `json:"payment_status"`
	PaidAmount    *decimal.Decimal `json:"paid_amount,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// NewOrderResponse maps a domain order to its API view
func NewOrderResponse(order *trade.Order) OrderResponse {
	return OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		Channel:       order.Channel.String(),
		CustomerName:  order.CustomerName,
		PaymentStatus: order.PaymentStatus.String(),
		PaidAmount:    order.PaidAmount,
		CreatedAt:     order.CreatedAt,
	}
}

// OrderDetailResponse is the API view of an order with its lines and the
// total derived from them
type OrderDetailResponse struct {
	OrderResponse
	Lines []OrderLineResponse `json:"lines"`
	Total decimal.Decimal     `json:"total"`
}

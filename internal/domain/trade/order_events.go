package trade

import (
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the trade domain
const (
	EventTypeOrderCreated        = "trade.order_created"
	EventTypeOrderPaymentChanged = "trade.order_payment_changed"
)

// OrderCreatedEvent is raised when a new order is opened
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	Channel       SalesChannel  `json:"channel"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// NewOrderCreatedEvent creates a new order created event
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", order.ID),
		Channel:         order.Channel,
		PaymentStatus:   order.PaymentStatus,
	}
}

// OrderPaymentChangedEvent is raised when an order's payment state moves.
// Reconciliation listens for this to keep the sales ledger in lockstep.
type OrderPaymentChangedEvent struct {
	shared.BaseDomainEvent
	PreviousStatus PaymentStatus    `json:"previous_status"`
	NewStatus      PaymentStatus    `json:"new_status"`
	PreviousPaid   *decimal.Decimal `json:"previous_paid,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
}

// NewOrderPaymentChangedEvent creates a new payment changed event
func NewOrderPaymentChangedEvent(order *Order, previous PaymentStatus, previousPaid, amount *decimal.Decimal) *OrderPaymentChangedEvent {
	return &OrderPaymentChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaymentChanged, "Order", order.ID),
		PreviousStatus:  previous,
		NewStatus:       order.PaymentStatus,
		PreviousPaid:    previousPaid,
		Amount:          amount,
	}
}

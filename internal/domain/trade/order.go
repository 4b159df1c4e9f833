package trade

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SalesChannel identifies how an order reached the business
type SalesChannel string

const (
	ChannelOrder       SalesChannel = "ORDER"
	ChannelConsignment SalesChannel = "CONSIGNMENT"
	ChannelReseller    SalesChannel = "RESELLER"
)

// IsValid checks if the channel is a valid SalesChannel
func (c SalesChannel) IsValid() bool {
	switch c {
	case ChannelOrder, ChannelConsignment, ChannelReseller:
		return true
	}
	return false
}

// String returns the string representation of SalesChannel
func (c SalesChannel) String() string {
	return string(c)
}

// PaymentStatus tracks how much of an order has been settled
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentUnpaid  PaymentStatus = "UNPAID"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPaid, PaymentPartial, PaymentUnpaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Order groups the withdrawal lines of one customer transaction and owns the
// fields the lines share: channel, customer and payment state. Lines reference
// the order by ID; OrderNumber is a database sequence and is what ledger
// descriptions cite as "Order #N".
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   int64            `gorm:"autoIncrement;uniqueIndex:idx_orders_number"`
	Channel       SalesChannel     `gorm:"size:20;not null"`
	CustomerName  string           `gorm:"size:150"`
	PaymentStatus PaymentStatus    `gorm:"size:10;not null;default:'UNPAID'"`
	PaidAmount    *decimal.Decimal `gorm:"type:decimal(18,2)"`
	IsArchived    bool             `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order. OrderNumber is assigned by the database on
// first save.
func NewOrder(channel SalesChannel, customerName string, paymentStatus PaymentStatus, paidAmount *decimal.Decimal) (*Order, error) {
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Sales channel must be ORDER, CONSIGNMENT or RESELLER")
	}
	if !paymentStatus.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_STATUS", "Payment status must be PAID, PARTIAL or UNPAID")
	}
	if paymentStatus == PaymentPartial {
		if paidAmount == nil || paidAmount.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_PAID_AMOUNT", "A partial order needs a positive paid amount")
		}
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Channel:           channel,
		CustomerName:      customerName,
		PaymentStatus:     paymentStatus,
		PaidAmount:        paidAmount,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))
	return order, nil
}

// UpdatePayment transitions the order's payment state. For PARTIAL the paid
// amount is the manually entered running total; for PAID it is the optional
// additional amount surfaced in the ledger audit trail.
func (o *Order) UpdatePayment(status PaymentStatus, amount *decimal.Decimal) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Payment status must be PAID, PARTIAL or UNPAID")
	}
	if status == PaymentPartial && (amount == nil || amount.LessThanOrEqual(decimal.Zero)) {
		return shared.NewDomainError("INVALID_PAID_AMOUNT", "A partial order needs a positive paid amount")
	}

	previous := o.PaymentStatus
	previousPaid := o.PaidAmount

	o.PaymentStatus = status
	if status == PaymentPartial {
		o.PaidAmount = amount
	} else if status == PaymentUnpaid {
		o.PaidAmount = nil
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaymentChangedEvent(o, previous, previousPaid, amount))
	return nil
}

// Archive soft-deletes the order after all its lines are gone
func (o *Order) Archive() {
	o.IsArchived = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// IsPartial returns true if the order is partially paid
func (o *Order) IsPartial() bool {
	return o.PaymentStatus == PaymentPartial
}

// IsUnpaid returns true if the order is unpaid
func (o *Order) IsUnpaid() bool {
	return o.PaymentStatus == PaymentUnpaid
}

package notification

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationType classifies what the alert is about
type NotificationType string

const (
	TypeExpirationAlert NotificationType = "EXPIRATION_ALERT"
	TypeLowStock        NotificationType = "LOW_STOCK"
)

// IsValid checks if the type is a valid NotificationType
func (t NotificationType) IsValid() bool {
	return t == TypeExpirationAlert || t == TypeLowStock
}

// String returns the string representation of NotificationType
func (t NotificationType) String() string {
	return string(t)
}

// Notification is a back-office alert. At most one notification exists per
// (item type, item, type) triple; repeated triggers reuse the existing row
// instead of piling up duplicates.
type Notification struct {
	shared.BaseAggregateRoot
	ItemType inventory.ItemType `gorm:"size:20;not null;uniqueIndex:idx_notifications_item"`
	ItemID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_notifications_item"`
	Type     NotificationType   `gorm:"size:20;not null;uniqueIndex:idx_notifications_item"`
	Message  string             `gorm:"size:300;not null"`
	IsRead   bool               `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a new notification
func NewNotification(itemType inventory.ItemType, itemID uuid.UUID, notifType NotificationType, message string) (*Notification, error) {
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Item type must be PRODUCT or RAW_MATERIAL")
	}
	if !notifType.IsValid() {
		return nil, shared.NewDomainError("INVALID_NOTIFICATION_TYPE", "Notification type must be EXPIRATION_ALERT or LOW_STOCK")
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message is required")
	}

	return &Notification{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemType:          itemType,
		ItemID:            itemID,
		Type:              notifType,
		Message:           message,
	}, nil
}

// Touch refreshes an existing notification when its trigger fires again.
// A re-triggered alert surfaces as unread with the latest message.
func (n *Notification) Touch(message string) {
	n.Message = message
	n.IsRead = false
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
}

// MarkRead marks the notification as read
func (n *Notification) MarkRead() {
	n.IsRead = true
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
}

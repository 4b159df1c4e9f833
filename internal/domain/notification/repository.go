package notification

import (
	"context"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	// FindByItemAndType returns the notification for an exact
	// (item type, item, type) triple, or shared.ErrNotFound.
	FindByItemAndType(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, notifType NotificationType) (*Notification, error)
	FindAll(ctx context.Context, onlyUnread bool, filter shared.Filter) ([]*Notification, error)
	Save(ctx context.Context, n *Notification) error
	Count(ctx context.Context, onlyUnread bool) (int64, error)
}

package persistence

import (
	"context"
	"errors"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/notification"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by its ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var n notification.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// FindByItemAndType returns the notification for an exact
// (item type, item, type) triple. The unique index keeps it a single row.
func (r *GormNotificationRepository) FindByItemAndType(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, notifType notification.NotificationType) (*notification.Notification, error) {
	var n notification.Notification
	if err := r.db.WithContext(ctx).
		Where("item_type = ? AND item_id = ? AND type = ?", itemType, itemID, notifType).
		First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// FindAll finds notifications, optionally only unread ones
func (r *GormNotificationRepository) FindAll(ctx context.Context, onlyUnread bool, filter shared.Filter) ([]*notification.Notification, error) {
	query := r.db.WithContext(ctx).Model(&notification.Notification{})
	if onlyUnread {
		query = query.Where("is_read = FALSE")
	}
	query = applyFilter(query, filter, "updated_at DESC")

	var notifications []*notification.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// Count counts notifications, optionally only unread ones
func (r *GormNotificationRepository) Count(ctx context.Context, onlyUnread bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&notification.Notification{})
	if onlyUnread {
		query = query.Where("is_read = FALSE")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormNotificationRepository implements NotificationRepository
var _ notification.NotificationRepository = (*GormNotificationRepository)(nil)

package notification

import (
	"context"
	"time"

	"github.com/foodworks/backoffice/internal/domain/notification"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationService exposes the back-office alert feed
type NotificationService struct {
	notificationRepo notification.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo notification.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// NotificationResponse is the API view of a notification
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemType  string    `json:"item_type"`
	ItemID    uuid.UUID `json:"item_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	UpdatedAt time.Time `json:"updated_at"`
}

// List returns notifications, optionally only unread ones
func (s *NotificationService) List(ctx context.Context, onlyUnread bool, filter shared.Filter) ([]NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindAll(ctx, onlyUnread, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, NotificationResponse{
			ID:        n.ID,
			ItemType:  n.ItemType.String(),
			ItemID:    n.ItemID,
			Type:      n.Type.String(),
			Message:   n.Message,
			IsRead:    n.IsRead,
			UpdatedAt: n.UpdatedAt,
		})
	}
	return responses, nil
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	n.MarkRead()
	return s.notificationRepo.Save(ctx, n)
}

// CountUnread returns the number of unread notifications
func (s *NotificationService) CountUnread(ctx context.Context) (int64, error) {
	return s.notificationRepo.Count(ctx, true)
}

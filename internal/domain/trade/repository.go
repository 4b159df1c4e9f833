package trade

import (
	"context"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, number int64) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Order, error)
	Save(ctx context.Context, order *Order) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

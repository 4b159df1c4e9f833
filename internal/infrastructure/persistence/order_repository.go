package persistence

import (
	"context"
	"errors"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/foodworks/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by its sequential number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, number int64) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Where("order_number = ?", number).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds non-archived orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.Order, error) {
	var orders []*trade.Order
	query := r.db.WithContext(ctx).Model(&trade.Order{}).
		Where("is_archived = FALSE")
	if filter.Search != "" {
		query = query.Where("customer_name ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyFilter(query, filter, "order_number DESC")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Count counts non-archived orders
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&trade.Order{}).
		Where("is_archived = FALSE")
	if filter.Search != "" {
		query = query.Where("customer_name ILIKE ?", "%"+filter.Search+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)

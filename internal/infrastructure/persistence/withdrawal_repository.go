package persistence

import (
	"context"
	"errors"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWithdrawalRepository implements WithdrawalRepository using GORM
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewGormWithdrawalRepository creates a new GormWithdrawalRepository
func NewGormWithdrawalRepository(db *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

// FindByID finds a withdrawal by its ID
func (r *GormWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Withdrawal, error) {
	var withdrawal inventory.Withdrawal
	if err := r.db.WithContext(ctx).First(&withdrawal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &withdrawal, nil
}

// FindByOrder finds all non-archived lines of an order
func (r *GormWithdrawalRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]inventory.Withdrawal, error) {
	var withdrawals []inventory.Withdrawal
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND is_archived = FALSE", orderID).
		Order("created_at ASC").
		Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// FindByItem finds withdrawals for an item
func (r *GormWithdrawalRepository) FindByItem(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, filter shared.Filter) ([]inventory.Withdrawal, error) {
	var withdrawals []inventory.Withdrawal
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Withdrawal{}).
			Where("item_type = ? AND item_id = ? AND is_archived = FALSE", itemType, itemID),
		filter,
		"date DESC, created_at DESC",
	)
	if err := query.Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// FindAll finds withdrawals matching the filter
func (r *GormWithdrawalRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Withdrawal, error) {
	var withdrawals []inventory.Withdrawal
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Withdrawal{}).
			Where("is_archived = FALSE"),
		filter,
		"date DESC, created_at DESC",
	)
	if err := query.Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// ExistsExpirationForBatch reports whether an EXPIRED withdrawal already
// references the batch
func (r *GormWithdrawalRepository) ExistsExpirationForBatch(ctx context.Context, batchID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.Withdrawal{}).
		Where("batch_id = ? AND reason = ?", batchID, inventory.ReasonExpired).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create creates a new withdrawal
func (r *GormWithdrawalRepository) Create(ctx context.Context, withdrawal *inventory.Withdrawal) error {
	return r.db.WithContext(ctx).Create(withdrawal).Error
}

// Save updates a withdrawal
func (r *GormWithdrawalRepository) Save(ctx context.Context, withdrawal *inventory.Withdrawal) error {
	return r.db.WithContext(ctx).Save(withdrawal).Error
}

// Count counts non-archived withdrawals
func (r *GormWithdrawalRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.Withdrawal{}).
		Where("is_archived = FALSE").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormWithdrawalRepository implements WithdrawalRepository
var _ inventory.WithdrawalRepository = (*GormWithdrawalRepository)(nil)

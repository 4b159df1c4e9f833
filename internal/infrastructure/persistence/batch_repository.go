package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var batch inventory.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByOwner finds all batches for an item
func (r *GormBatchRepository) FindByOwner(ctx context.Context, itemType inventory.ItemType, ownerItemID uuid.UUID, filter shared.Filter) ([]inventory.Batch, error) {
	var batches []inventory.Batch
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Batch{}).
			Where("item_type = ? AND owner_item_id = ? AND is_archived = FALSE", itemType, ownerItemID),
		filter,
		"COALESCE(expiration_date, '9999-12-31') ASC, created_at ASC",
	)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindPendingSweep finds batches of one item class that reached their
// expiration date but were never marked expired. Marking happens in the
// sweep transaction, so a batch appears here exactly once.
func (r *GormBatchRepository) FindPendingSweep(ctx context.Context, itemType inventory.ItemType, today time.Time) ([]inventory.Batch, error) {
	var batches []inventory.Batch
	if err := r.db.WithContext(ctx).
		Where("item_type = ? AND is_expired = FALSE AND is_archived = FALSE", itemType).
		Where("expiration_date IS NOT NULL AND expiration_date <= ?", today).
		Order("expiration_date ASC, created_at ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindExpiredWithStock finds already-expired, unarchived batches still
// holding a positive quantity. These are sweep leftovers from runs that
// died between marking and deducting.
func (r *GormBatchRepository) FindExpiredWithStock(ctx context.Context, itemType inventory.ItemType, today time.Time) ([]inventory.Batch, error) {
	var batches []inventory.Batch
	if err := r.db.WithContext(ctx).
		Where("item_type = ? AND is_expired = TRUE AND is_archived = FALSE AND quantity > 0", itemType).
		Where("expiration_date IS NOT NULL AND expiration_date <= ?", today).
		Order("expiration_date ASC, created_at ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// Count counts unarchived batches for an item class
func (r *GormBatchRepository) Count(ctx context.Context, itemType inventory.ItemType, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.Batch{}).
		Where("item_type = ? AND is_archived = FALSE", itemType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormBatchRepository implements BatchRepository
var _ inventory.BatchRepository = (*GormBatchRepository)(nil)

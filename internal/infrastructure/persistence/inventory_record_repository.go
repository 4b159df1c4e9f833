package persistence

import (
	"context"
	"errors"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInventoryRecordRepository implements InventoryRecordRepository using GORM
type GormInventoryRecordRepository struct {
	db *gorm.DB
}

// NewGormInventoryRecordRepository creates a new GormInventoryRecordRepository
func NewGormInventoryRecordRepository(db *gorm.DB) *GormInventoryRecordRepository {
	return &GormInventoryRecordRepository{db: db}
}

// FindByID finds an inventory record by its ID
func (r *GormInventoryRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByItem finds the inventory record for an item
func (r *GormInventoryRecordRepository) FindByItem(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	if err := r.db.WithContext(ctx).
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll finds all inventory records for an item class
func (r *GormInventoryRecordRepository) FindAll(ctx context.Context, itemType inventory.ItemType, filter shared.Filter) ([]inventory.InventoryRecord, error) {
	var records []inventory.InventoryRecord
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}).
			Where("item_type = ?", itemType),
		filter,
		"created_at ASC",
	)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindBelowThreshold finds records at or below their alert threshold.
// Records with a zero threshold never alert.
func (r *GormInventoryRecordRepository) FindBelowThreshold(ctx context.Context, filter shared.Filter) ([]inventory.InventoryRecord, error) {
	var records []inventory.InventoryRecord
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}).
			Where("threshold > 0 AND total_stock <= threshold"),
		filter,
		"total_stock ASC",
	)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetOrCreate gets the existing record for an item or creates a zeroed one.
// A concurrent insert losing the unique index race falls back to re-reading
// the winner's row.
func (r *GormInventoryRecordRepository) GetOrCreate(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID) (*inventory.InventoryRecord, error) {
	record, err := r.FindByItem(ctx, itemType, itemID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := inventory.NewInventoryRecord(itemType, itemID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByItem(ctx, itemType, itemID)
		}
		return nil, err
	}
	return fresh, nil
}

// Save creates or updates an inventory record
func (r *GormInventoryRecordRepository) Save(ctx context.Context, record *inventory.InventoryRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// DeductStock atomically decrements total_stock, guarded against overdraw.
// The WHERE clause carries the guard so two concurrent deductions can never
// both pass a stale read of the total.
func (r *GormInventoryRecordRepository) DeductStock(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	result := r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}).
		Where("item_type = ? AND item_id = ? AND total_stock >= ?", itemType, itemID, quantity).
		Updates(map[string]interface{}{
			"total_stock": gorm.Expr("total_stock - ?", quantity),
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing record from an overdrawn one
		if _, err := r.FindByItem(ctx, itemType, itemID); err != nil {
			return err
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// DeductStockFlooring atomically decrements total_stock, flooring at zero.
// Used by the expiration sweep, where the batch quantity may exceed the
// cached total after manual corrections.
func (r *GormInventoryRecordRepository) DeductStockFlooring(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	// sqlite has no GREATEST; its scalar MAX takes two arguments.
	floor := "GREATEST(total_stock - ?, 0)"
	if r.db.Dialector.Name() == "sqlite" {
		floor = "MAX(total_stock - ?, 0)"
	}

	result := r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}).
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Updates(map[string]interface{}{
			"total_stock": gorm.Expr(floor, quantity),
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RestockAtomic atomically increments total_stock
func (r *GormInventoryRecordRepository) RestockAtomic(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	result := r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}).
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Updates(map[string]interface{}{
			"total_stock": gorm.Expr("total_stock + ?", quantity),
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts inventory records for an item class
func (r *GormInventoryRecordRepository) Count(ctx context.Context, itemType inventory.ItemType, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}).
		Where("item_type = ?", itemType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormInventoryRecordRepository implements InventoryRecordRepository
var _ inventory.InventoryRecordRepository = (*GormInventoryRecordRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/foodworks/backoffice/internal/domain/finance"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLedgerEntryRepository implements LedgerEntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.LedgerEntry, error) {
	var entry finance.LedgerEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByOrderID returns the reconciled sales entry for an order. A partial
// unique index on order_id guarantees at most one row exists.
func (r *GormLedgerEntryRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*finance.LedgerEntry, error) {
	var entry finance.LedgerEntry
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByDateRange finds entries dated within [from, to]
func (r *GormLedgerEntryRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]*finance.LedgerEntry, error) {
	var entries []*finance.LedgerEntry
	query := applyFilter(
		r.db.WithContext(ctx).Model(&finance.LedgerEntry{}).
			Where("date >= ? AND date <= ?", from, to),
		filter,
		"date DESC, created_at DESC",
	)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll finds ledger entries matching the filter
func (r *GormLedgerEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.LedgerEntry, error) {
	var entries []*finance.LedgerEntry
	query := applyFilter(
		r.db.WithContext(ctx).Model(&finance.LedgerEntry{}),
		filter,
		"date DESC, created_at DESC",
	)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates or updates a ledger entry
func (r *GormLedgerEntryRepository) Save(ctx context.Context, entry *finance.LedgerEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete deletes a ledger entry
func (r *GormLedgerEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.LedgerEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByOrderID deletes the sales entry tied to an order. Deleting an
// order that never produced an entry is not an error.
func (r *GormLedgerEntryRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&finance.LedgerEntry{}, "order_id = ?", orderID).Error
}

// Count counts ledger entries
func (r *GormLedgerEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&finance.LedgerEntry{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormLedgerEntryRepository implements LedgerEntryRepository
var _ finance.LedgerEntryRepository = (*GormLedgerEntryRepository)(nil)

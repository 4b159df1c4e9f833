package persistence

import (
	"context"
	"errors"

	"github.com/foodworks/backoffice/internal/domain/catalog"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRawMaterialRepository implements RawMaterialRepository using GORM
type GormRawMaterialRepository struct {
	db *gorm.DB
}

// NewGormRawMaterialRepository creates a new GormRawMaterialRepository
func NewGormRawMaterialRepository(db *gorm.DB) *GormRawMaterialRepository {
	return &GormRawMaterialRepository{db: db}
}

// FindByID finds a raw material by its ID
func (r *GormRawMaterialRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.RawMaterial, error) {
	var material catalog.RawMaterial
	if err := r.db.WithContext(ctx).First(&material, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

// FindAll finds non-archived raw materials matching the filter
func (r *GormRawMaterialRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.RawMaterial, error) {
	query := r.db.WithContext(ctx).Model(&catalog.RawMaterial{}).
		Where("is_archived = FALSE")
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyFilter(query, filter, "name ASC")

	var materials []catalog.RawMaterial
	if err := query.Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// Save creates or updates a raw material
func (r *GormRawMaterialRepository) Save(ctx context.Context, material *catalog.RawMaterial) error {
	return r.db.WithContext(ctx).Save(material).Error
}

// Count counts non-archived raw materials
func (r *GormRawMaterialRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&catalog.RawMaterial{}).
		Where("is_archived = FALSE")
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormRawMaterialRepository implements RawMaterialRepository
var _ catalog.RawMaterialRepository = (*GormRawMaterialRepository)(nil)

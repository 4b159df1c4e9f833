package persistence

import (
	"context"
	"errors"

	"github.com/foodworks/backoffice/internal/domain/catalog"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDiscountRepository implements DiscountRepository using GORM
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// FindByID finds a discount by its ID
func (r *GormDiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Discount, error) {
	var discount catalog.Discount
	if err := r.db.WithContext(ctx).First(&discount, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &discount, nil
}

// FindAll finds non-archived discounts matching the filter
func (r *GormDiscountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Discount, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Discount{}).
		Where("is_archived = FALSE")
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyFilter(query, filter, "name ASC")

	var discounts []catalog.Discount
	if err := query.Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

// Save creates or updates a discount
func (r *GormDiscountRepository) Save(ctx context.Context, discount *catalog.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

// Ensure GormDiscountRepository implements DiscountRepository
var _ catalog.DiscountRepository = (*GormDiscountRepository)(nil)

package catalog

import (
	"time"

	"github.com/foodworks/backoffice/internal/domain/shared"
)

// RawMaterial represents an ingredient or packaging material used in production
type RawMaterial struct {
	shared.BaseAggregateRoot
	Name       string `gorm:"size:150;not null;uniqueIndex:idx_raw_materials_name"`
	Unit       string `gorm:"size:30"`
	IsArchived bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (RawMaterial) TableName() string {
	return "raw_materials"
}

// NewRawMaterial creates a new raw material
func NewRawMaterial(name, unit string) (*RawMaterial, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Raw material name cannot be empty")
	}

	return &RawMaterial{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Unit:              unit,
	}, nil
}

// Archive soft-deletes the raw material
func (m *RawMaterial) Archive() {
	m.IsArchived = true
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

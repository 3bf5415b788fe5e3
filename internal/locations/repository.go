package location

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/pkg/db/models"
)

// Repository reads vendor locations for the storefront's location bindings.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns the vendor's active sites ordered by name.
func (r *Repository) ListActive(ctx context.Context, vendorID uuid.UUID) ([]models.Location, error) {
	var locations []models.Location
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND is_active = TRUE", vendorID).
		Order("name ASC").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

// CountActive returns how many active sites the vendor operates. This is the
// aggregate the storefront enricher consumes.
func (r *Repository) CountActive(ctx context.Context, vendorID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("vendor_id = ? AND is_active = TRUE", vendorID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

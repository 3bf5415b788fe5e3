package product

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/pkg/db/models"
	"github.com/leafline/leafline-backend/pkg/pagination"
)

// Repository reads the vendor product catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActivePage returns one cursor page of active listings ordered newest
// first with the row id as tiebreaker.
func (r *Repository) ListActivePage(ctx context.Context, vendorID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Product, error) {
	q := r.db.WithContext(ctx).
		Where("vendor_id = ? AND is_active = TRUE", vendorID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindActive loads one active listing scoped to the vendor.
func (r *Repository) FindActive(ctx context.Context, vendorID, productID uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		First(&p, "id = ? AND vendor_id = ? AND is_active = TRUE", productID, vendorID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CategoryBreakdown returns per-category active listing counts sorted by
// category name.
func (r *Repository) CategoryBreakdown(ctx context.Context, vendorID uuid.UUID) ([]CategorySummary, error) {
	var rows []CategorySummary
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category, COUNT(*) AS count").
		Where("vendor_id = ? AND is_active = TRUE", vendorID).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows, nil
}

// ActiveCategoryCounts returns the vendor's active listing total and the
// distinct categories those listings span, sorted by name. This is the
// aggregate shape the storefront enricher consumes.
func (r *Repository) ActiveCategoryCounts(ctx context.Context, vendorID uuid.UUID) (int, []string, error) {
	rows, err := r.CategoryBreakdown(ctx, vendorID)
	if err != nil {
		return 0, nil, err
	}
	total := 0
	categories := make([]string, 0, len(rows))
	for _, row := range rows {
		total += row.Count
		categories = append(categories, row.Category)
	}
	return total, categories, nil
}

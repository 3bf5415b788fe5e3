package storefront

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/pkg/db"
	"github.com/leafline/leafline-backend/pkg/db/models"
	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/logger"
	"github.com/leafline/leafline-backend/pkg/types"
)

const DefaultComponentBatchSize = 50

// Repository persists storefront sections and components. Inserting a design
// is two sequential phases: sections first (their generated ids are mapped by
// section_key), then components carrying real section ids in batches.
type Repository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewRepository binds a GORM DB.
func NewRepository(db *gorm.DB, logg *logger.Logger) *Repository {
	return &Repository{db: db, logger: logg}
}

// FindVendor loads the vendor row.
func (r *Repository) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindVendorBySlug loads the vendor row by its public slug.
func (r *Repository) FindVendorBySlug(ctx context.Context, slug string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// MarkGenerated flips the vendor's storefront flag and records the template
// used. Only called on full pipeline success.
func (r *Repository) MarkGenerated(ctx context.Context, vendorID uuid.UUID, templateID *string) error {
	updates := map[string]any{"storefront_generated": true}
	if templateID != nil {
		updates["storefront_template_id"] = *templateID
	}
	return r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", vendorID).
		Updates(updates).Error
}

// DeleteDesign removes a vendor's persisted storefront. Components are
// removed first so the delete works without relying on FK cascade.
func (r *Repository) DeleteDesign(ctx context.Context, vendorID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vendor_id = ?", vendorID).Delete(&models.StorefrontComponent{}).Error; err != nil {
			return err
		}
		return tx.Where("vendor_id = ?", vendorID).Delete(&models.StorefrontSection{}).Error
	})
}

// InsertSections persists the design's sections and returns the
// section_key -> generated id map dependent components need. A failure here
// is fatal to the request; nothing downstream can proceed without ids.
func (r *Repository) InsertSections(ctx context.Context, vendorID uuid.UUID, sections []Section) (map[string]uuid.UUID, error) {
	idMap := make(map[string]uuid.UUID, len(sections))
	rows := make([]models.StorefrontSection, len(sections))
	for i, s := range sections {
		rows[i] = models.StorefrontSection{
			ID:           uuid.New(),
			VendorID:     vendorID,
			SectionKey:   s.SectionKey,
			SectionOrder: s.SectionOrder,
			PageType:     s.PageType,
		}
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		// A duplicate (vendor, page, section_key) means another generate won
		// the race between the wipe and this insert.
		if db.IsUniqueViolation(err, "uq_storefront_sections_vendor_page_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "storefront generation already in progress")
		}
		return nil, fmt.Errorf("insert sections: %w", err)
	}
	for _, row := range rows {
		idMap[row.SectionKey] = row.ID
	}
	return idMap, nil
}

// InsertComponents persists components in batches, resolving each one's
// section_key through the id map. A failed batch is logged and skipped, not
// fatal; components referencing unknown section keys are skipped the same
// way. Returns how many rows were actually inserted.
func (r *Repository) InsertComponents(ctx context.Context, vendorID uuid.UUID, idMap map[string]uuid.UUID, components []Component, batchSize int) int {
	if batchSize <= 0 {
		batchSize = DefaultComponentBatchSize
	}

	rows := make([]models.StorefrontComponent, 0, len(components))
	for _, c := range components {
		sectionID, ok := idMap[c.SectionKey]
		if !ok {
			r.warn(ctx, vendorID, fmt.Sprintf("component %q references unmapped section %q, skipped", c.ComponentKey, c.SectionKey), nil)
			continue
		}
		rows = append(rows, models.StorefrontComponent{
			ID:            uuid.New(),
			SectionID:     sectionID,
			VendorID:      vendorID,
			ComponentKey:  c.ComponentKey,
			Props:         c.Props,
			FieldBindings: c.FieldBindings,
			PositionOrder: c.PositionOrder,
			IsEnabled:     true,
			IsVisible:     true,
		})
	}

	inserted := 0
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		if err := r.db.WithContext(ctx).Create(&batch).Error; err != nil {
			r.warn(ctx, vendorID, fmt.Sprintf("component batch %d-%d failed, skipped", start, end), err)
			continue
		}
		inserted += len(batch)
	}
	return inserted
}

// GetDesign loads the persisted storefront ordered for rendering.
func (r *Repository) GetDesign(ctx context.Context, vendorID uuid.UUID) ([]models.StorefrontSection, []models.StorefrontComponent, error) {
	var sections []models.StorefrontSection
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("section_order ASC").
		Find(&sections).Error; err != nil {
		return nil, nil, err
	}

	var components []models.StorefrontComponent
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("position_order ASC").
		Find(&components).Error; err != nil {
		return nil, nil, err
	}
	return sections, components, nil
}

// FindSection loads one section scoped to the vendor.
func (r *Repository) FindSection(ctx context.Context, vendorID, sectionID uuid.UUID) (*models.StorefrontSection, error) {
	var section models.StorefrontSection
	if err := r.db.WithContext(ctx).
		First(&section, "id = ? AND vendor_id = ?", sectionID, vendorID).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// FindComponent loads one component scoped to the vendor.
func (r *Repository) FindComponent(ctx context.Context, vendorID, componentID uuid.UUID) (*models.StorefrontComponent, error) {
	var component models.StorefrontComponent
	if err := r.db.WithContext(ctx).
		First(&component, "id = ? AND vendor_id = ?", componentID, vendorID).Error; err != nil {
		return nil, err
	}
	return &component, nil
}

// UpdateSectionOrders applies a full renumbering in one transaction.
func (r *Repository) UpdateSectionOrders(ctx context.Context, vendorID uuid.UUID, orders map[uuid.UUID]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			if err := tx.Model(&models.StorefrontSection{}).
				Where("id = ? AND vendor_id = ?", id, vendorID).
				Update("section_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateComponentPositions renumbers one section's components in a
// transaction.
func (r *Repository) UpdateComponentPositions(ctx context.Context, vendorID, sectionID uuid.UUID, positions map[uuid.UUID]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, position := range positions {
			if err := tx.Model(&models.StorefrontComponent{}).
				Where("id = ? AND vendor_id = ? AND section_id = ?", id, vendorID, sectionID).
				Update("position_order", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateComponentContent overwrites a component's props and bindings.
func (r *Repository) UpdateComponentContent(ctx context.Context, vendorID, componentID uuid.UUID, props, bindings types.JSONMap) error {
	return r.db.WithContext(ctx).
		Model(&models.StorefrontComponent{}).
		Where("id = ? AND vendor_id = ?", componentID, vendorID).
		Updates(map[string]any{"props": props, "field_bindings": bindings}).Error
}

// InsertComponent appends one component to a section.
func (r *Repository) InsertComponent(ctx context.Context, row *models.StorefrontComponent) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// DeleteComponent removes one component scoped to the vendor.
func (r *Repository) DeleteComponent(ctx context.Context, vendorID, componentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", componentID, vendorID).
		Delete(&models.StorefrontComponent{}).Error
}

// DeleteSection removes one section and everything inside it.
func (r *Repository) DeleteSection(ctx context.Context, vendorID, sectionID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vendor_id = ? AND section_id = ?", vendorID, sectionID).
			Delete(&models.StorefrontComponent{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND vendor_id = ?", sectionID, vendorID).
			Delete(&models.StorefrontSection{}).Error
	})
}

// ComponentsInSection lists a section's components ordered by position.
func (r *Repository) ComponentsInSection(ctx context.Context, vendorID, sectionID uuid.UUID) ([]models.StorefrontComponent, error) {
	var components []models.StorefrontComponent
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND section_id = ?", vendorID, sectionID).
		Order("position_order ASC").
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

// SectionsForVendor lists the vendor's sections ordered for rendering.
func (r *Repository) SectionsForVendor(ctx context.Context, vendorID uuid.UUID) ([]models.StorefrontSection, error) {
	var sections []models.StorefrontSection
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("section_order ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *Repository) warn(ctx context.Context, vendorID uuid.UUID, msg string, err error) {
	if r.logger == nil {
		return
	}
	ctx = r.logger.WithVendorID(ctx, vendorID.String())
	if err != nil {
		ctx = r.logger.WithFields(ctx, map[string]any{"error": err.Error()})
	}
	r.logger.Warn(ctx, msg)
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/pkg/types"
)

// StorefrontComponent is one configured component instance inside a section.
// Destroying the owning section cascades to its components.
type StorefrontComponent struct {
	ID            uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SectionID     uuid.UUID     `gorm:"column:section_id;type:uuid;not null;index"`
	VendorID      uuid.UUID     `gorm:"column:vendor_id;type:uuid;not null;index"`
	ComponentKey  string        `gorm:"column:component_key;not null"`
	Props         types.JSONMap `gorm:"column:props;type:jsonb"`
	FieldBindings types.JSONMap `gorm:"column:field_bindings;type:jsonb"`
	PositionOrder int           `gorm:"column:position_order;not null"`
	IsEnabled     bool          `gorm:"column:is_enabled;not null;default:true"`
	IsVisible     bool          `gorm:"column:is_visible;not null;default:true"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

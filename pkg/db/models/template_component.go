package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/types"
)

// TemplateComponent is one row of the flattened template catalog: a component
// definition plus the container (section) it belongs to. The template store
// reconstructs section lists by grouping rows on section_key, first
// occurrence wins for section metadata.
type TemplateComponent struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TemplateID    string         `gorm:"column:template_id;not null;index"`
	ComponentKey  string         `gorm:"column:component_key;not null"`
	Props         types.JSONMap  `gorm:"column:props;type:jsonb"`
	PositionOrder int            `gorm:"column:position_order;not null"`
	SectionKey    string         `gorm:"column:section_key;not null"`
	SectionOrder  int            `gorm:"column:section_order;not null"`
	PageType      enums.PageType `gorm:"column:page_type;type:page_type;not null"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
}

package storefront

import (
	"time"

	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/pkg/db/models"
	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/types"
)

// Generation strategies accepted by the generate endpoint.
const (
	StrategyTemplate   = "template"
	StrategyAI         = "ai"
	StrategyAIParallel = "ai-parallel"
)

// GenerateInput is the request body for storefront generation.
type GenerateInput struct {
	Strategy   string  `json:"strategy" validate:"omitempty,oneof=template ai ai-parallel"`
	TemplateID *string `json:"template_id,omitempty" validate:"omitempty,min=1,max=64"`
}

// GenerationResult is the top-level outcome returned to the API layer.
type GenerationResult struct {
	Success           bool      `json:"success"`
	VendorID          uuid.UUID `json:"vendor_id"`
	Strategy          string    `json:"strategy"`
	SectionsCreated   int       `json:"sections_created"`
	ComponentsCreated int       `json:"components_created"`
	StorefrontURL     string    `json:"storefront_url,omitempty"`
	Design            *Design   `json:"design,omitempty"`
	Logs              []string  `json:"logs"`
	Errors            []string  `json:"errors"`
	Warnings          []string  `json:"warnings,omitempty"`
}

// SectionDTO is one persisted section with its components, as served to the
// dashboard and renderer.
type SectionDTO struct {
	ID           uuid.UUID      `json:"id"`
	SectionKey   string         `json:"section_key"`
	SectionOrder int            `json:"section_order"`
	PageType     enums.PageType `json:"page_type"`
	Components   []ComponentDTO `json:"components"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ComponentDTO is one persisted component instance.
type ComponentDTO struct {
	ID            uuid.UUID     `json:"id"`
	SectionID     uuid.UUID     `json:"section_id"`
	ComponentKey  string        `json:"component_key"`
	Props         types.JSONMap `json:"props"`
	FieldBindings types.JSONMap `json:"field_bindings,omitempty"`
	PositionOrder int           `json:"position_order"`
	IsEnabled     bool          `json:"is_enabled"`
	IsVisible     bool          `json:"is_visible"`
}

// StorefrontDTO is the full persisted storefront for one vendor.
type StorefrontDTO struct {
	VendorID   uuid.UUID    `json:"vendor_id"`
	Generated  bool         `json:"generated"`
	TemplateID *string      `json:"template_id,omitempty"`
	Sections   []SectionDTO `json:"sections"`
}

// ComponentFromModel maps a persisted component row.
func ComponentFromModel(m models.StorefrontComponent) ComponentDTO {
	return ComponentDTO{
		ID:            m.ID,
		SectionID:     m.SectionID,
		ComponentKey:  m.ComponentKey,
		Props:         m.Props,
		FieldBindings: m.FieldBindings,
		PositionOrder: m.PositionOrder,
		IsEnabled:     m.IsEnabled,
		IsVisible:     m.IsVisible,
	}
}

// AssembleStorefront groups component rows under their owning sections,
// preserving the persisted ordering.
func AssembleStorefront(vendor *models.Vendor, sections []models.StorefrontSection, components []models.StorefrontComponent) *StorefrontDTO {
	dto := &StorefrontDTO{Sections: []SectionDTO{}}
	if vendor != nil {
		dto.VendorID = vendor.ID
		dto.Generated = vendor.StorefrontGenerated
		dto.TemplateID = vendor.StorefrontTemplateID
	}

	bySection := make(map[uuid.UUID][]ComponentDTO, len(sections))
	for _, c := range components {
		bySection[c.SectionID] = append(bySection[c.SectionID], ComponentFromModel(c))
	}

	for _, s := range sections {
		comps := bySection[s.ID]
		if comps == nil {
			comps = []ComponentDTO{}
		}
		dto.Sections = append(dto.Sections, SectionDTO{
			ID:           s.ID,
			SectionKey:   s.SectionKey,
			SectionOrder: s.SectionOrder,
			PageType:     s.PageType,
			Components:   comps,
			CreatedAt:    s.CreatedAt,
			UpdatedAt:    s.UpdatedAt,
		})
	}
	return dto
}

package storefront

import (
	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/types"
)

// Section is one ordered container of components on a page. section_order -1
// is reserved for the header and 999 for the footer.
type Section struct {
	SectionKey   string         `json:"section_key"`
	SectionOrder int            `json:"section_order"`
	PageType     enums.PageType `json:"page_type"`
}

// Component is one configured component occurrence, keyed to its owning
// section by section_key until persistence assigns real section ids.
// position_order is contiguous 0..N-1 within its section.
type Component struct {
	SectionKey    string        `json:"section_key"`
	ComponentKey  string        `json:"component_key"`
	Props         types.JSONMap `json:"props"`
	FieldBindings types.JSONMap `json:"field_bindings,omitempty"`
	PositionOrder int           `json:"position_order"`
}

// Design is the working {sections, components} collection passed through the
// applier, compliance pass, validator, auto-fixer, and persistence.
type Design struct {
	Sections   []Section   `json:"sections"`
	Components []Component `json:"components"`
}

// VendorData is the transient enrichment view consumed by templating and
// validation. It is recomputed on every generation request and never stored.
type VendorData struct {
	StoreName         string           `json:"store_name"`
	Slug              string           `json:"slug"`
	StoreTagline      *string          `json:"store_tagline,omitempty"`
	LogoURL           *string          `json:"logo_url,omitempty"`
	BrandColors       []string         `json:"brand_colors,omitempty"`
	VendorType        enums.VendorType `json:"vendor_type"`
	WholesaleEnabled  bool             `json:"wholesale_enabled"`
	ProductCount      int              `json:"product_count"`
	ProductCategories []string         `json:"product_categories,omitempty"`
	HasProducts       bool             `json:"has_products"`
	LocationCount     int              `json:"location_count"`
}

// ValidationResult aggregates all rule violations for one design. Warnings
// never affect Valid.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// GroupResult is one page group's outcome in the parallel strategy.
type GroupResult struct {
	Group      string      `json:"group"`
	Sections   []Section   `json:"sections"`
	Components []Component `json:"components"`
	Success    bool        `json:"success"`
	Err        error       `json:"-"`
}

func cloneDesign(d Design) Design {
	out := Design{
		Sections:   make([]Section, len(d.Sections)),
		Components: make([]Component, len(d.Components)),
	}
	copy(out.Sections, d.Sections)
	for i, c := range d.Components {
		c.Props = c.Props.Clone()
		c.FieldBindings = c.FieldBindings.Clone()
		out.Components[i] = c
	}
	return out
}

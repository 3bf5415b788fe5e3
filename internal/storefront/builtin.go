package storefront

import (
	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/types"
)

const DarkLuxuryTemplateID = "dark-luxury"

var builtinTemplateIDs = []string{DarkLuxuryTemplateID}

// BuiltinTemplate returns a compiled-in template for the given id, or nil.
// Builtins guarantee template application works before any catalog rows exist.
func BuiltinTemplate(templateID string) *Template {
	if templateID != DarkLuxuryTemplateID {
		return nil
	}
	return darkLuxuryTemplate()
}

func darkLuxuryTemplate() *Template {
	return &Template{
		TemplateID: DarkLuxuryTemplateID,
		DesignSystem: types.JSONMap{
			"colors": map[string]any{
				"background": "#0b0b0f",
				"surface":    "#16161d",
				"primary":    "#c9a34e",
				"text":       "#f5f2ea",
				"muted":      "#9b97a6",
			},
			"typography": map[string]any{
				"heading": "Cormorant Garamond",
				"body":    "Inter",
			},
			"spacing": []any{8, 12, 16, 20, 24, 32, 40, 48, 60, 80, 100},
		},
		AllPages: []SectionDefinition{
			{
				SectionKey: "header", SectionOrder: -1, PageType: enums.PageTypeAll,
				Components: []ComponentDefinition{
					{ComponentKey: "smart_header", Props: types.JSONMap{"logo_url": "{{vendor.logo_url}}", "store_name": "{{vendor.store_name}}"}},
				},
			},
			{
				SectionKey: "hero", SectionOrder: 0, PageType: enums.PageTypeHome,
				Components: []ComponentDefinition{
					{ComponentKey: "text", Props: types.JSONMap{"text": "{{vendor.store_name}}", "alignment": "center", "font_size": 56, "font_weight": 700, "color": "#f5f2ea"}},
					{ComponentKey: "spacer", Props: types.JSONMap{"height": float64(16)}},
					{ComponentKey: "text", Props: types.JSONMap{"text": "{{vendor.store_tagline}}", "alignment": "center", "font_size": 22, "color": "#c9a34e"}},
					{ComponentKey: "spacer", Props: types.JSONMap{"height": float64(32)}},
					{ComponentKey: "button", Props: types.JSONMap{"label": "Shop the Collection", "href": "/{{vendor.slug}}/shop", "variant": "primary"}},
				},
			},
			{
				SectionKey: "features", SectionOrder: 1, PageType: enums.PageTypeHome,
				Components: []ComponentDefinition{
					{ComponentKey: "text", Props: types.JSONMap{"text": "Lab tested. Hand selected. Delivered discreetly.", "alignment": "center", "font_size": 28, "color": "#f5f2ea"}},
					{ComponentKey: "spacer", Props: types.JSONMap{"height": float64(24)}},
					{ComponentKey: "smart_category_nav", Props: types.JSONMap{}},
				},
			},
			{
				SectionKey: "products", SectionOrder: 2, PageType: enums.PageTypeShop,
				Components: []ComponentDefinition{
					{ComponentKey: "text", Props: types.JSONMap{"text": "The Collection", "alignment": "center", "font_size": 36, "color": "#f5f2ea"}},
					{ComponentKey: "spacer", Props: types.JSONMap{"height": float64(24)}},
					{ComponentKey: "smart_product_grid", Props: types.JSONMap{"columns": float64(3)}},
				},
			},
			{
				SectionKey: "product-detail", SectionOrder: 3, PageType: enums.PageTypeProduct,
				Components: []ComponentDefinition{
					{ComponentKey: "smart_product_detail", Props: types.JSONMap{}},
				},
			},
			{
				SectionKey: "stats", SectionOrder: 4, PageType: enums.PageTypeHome,
				Components: []ComponentDefinition{
					{ComponentKey: "smart_stats_counter", Props: types.JSONMap{}},
				},
			},
			{
				SectionKey: "about", SectionOrder: 5, PageType: enums.PageTypeAbout,
				Components: []ComponentDefinition{
					{ComponentKey: "text", Props: types.JSONMap{"text": "About {{vendor.store_name}}", "alignment": "center", "font_size": 36, "color": "#f5f2ea"}},
					{ComponentKey: "spacer", Props: types.JSONMap{"height": float64(16)}},
					{ComponentKey: "text", Props: types.JSONMap{"text": "{{vendor.store_tagline}}", "alignment": "center", "font_size": 20, "color": "#9b97a6"}},
				},
			},
			{
				SectionKey: "testimonials", SectionOrder: 6, PageType: enums.PageTypeHome,
				Components: []ComponentDefinition{
					{ComponentKey: "smart_testimonials", Props: types.JSONMap{}},
				},
			},
			{
				SectionKey: "locations", SectionOrder: 7, PageType: enums.PageTypeContact,
				Components: []ComponentDefinition{
					{ComponentKey: "smart_location_map", Props: types.JSONMap{}},
				},
			},
			{
				SectionKey: "lab-results", SectionOrder: 8, PageType: enums.PageTypeLabResults,
				Components: []ComponentDefinition{
					{ComponentKey: "text", Props: types.JSONMap{"text": "Certificates of Analysis", "alignment": "center", "font_size": 36, "color": "#f5f2ea"}},
					{ComponentKey: "divider", Props: types.JSONMap{}},
				},
			},
			{
				SectionKey: "legal", SectionOrder: 9, PageType: enums.PageTypePrivacy,
				Components: []ComponentDefinition{
					{ComponentKey: "smart_legal_page", Props: types.JSONMap{}},
				},
			},
			{
				SectionKey: "cta", SectionOrder: 10, PageType: enums.PageTypeHome,
				Components: []ComponentDefinition{
					{ComponentKey: "text", Props: types.JSONMap{"text": "Experience {{vendor.store_name}}", "alignment": "center", "font_size": 32, "color": "#f5f2ea"}},
					{ComponentKey: "spacer", Props: types.JSONMap{"height": float64(20)}},
					{ComponentKey: "button", Props: types.JSONMap{"label": "Browse Menu", "href": "/{{vendor.slug}}/shop", "variant": "primary"}},
				},
			},
			{
				SectionKey: "footer", SectionOrder: 999, PageType: enums.PageTypeAll,
				Components: []ComponentDefinition{
					{ComponentKey: "smart_footer", Props: types.JSONMap{"store_name": "{{vendor.store_name}}"}},
				},
			},
		},
	}
}

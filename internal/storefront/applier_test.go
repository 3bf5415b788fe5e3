package storefront

import (
	"reflect"
	"testing"

	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/types"
)

func testTemplate() *Template {
	return &Template{
		TemplateID: "test",
		AllPages: []SectionDefinition{
			{
				SectionKey: "header", SectionOrder: -1, PageType: enums.PageTypeAll,
				Components: []ComponentDefinition{{ComponentKey: "smart_header", Props: types.JSONMap{}}},
			},
			{
				SectionKey: "hero", SectionOrder: 0, PageType: enums.PageTypeHome,
				Components: []ComponentDefinition{
					{ComponentKey: "text", Props: types.JSONMap{"text": "{{vendor.store_name}}"}},
					{ComponentKey: "text", Props: types.JSONMap{"text": "{{vendor.store_tagline}}"}},
				},
			},
			{
				// duplicate key: components-only contribution
				SectionKey: "hero", SectionOrder: 5, PageType: enums.PageTypeHome,
				Components: []ComponentDefinition{{ComponentKey: "spacer", Props: types.JSONMap{"height": float64(24)}}},
			},
			{
				SectionKey: "footer", SectionOrder: 999, PageType: enums.PageTypeAll,
				Components: []ComponentDefinition{{ComponentKey: "smart_footer", Props: types.JSONMap{}}},
			},
		},
	}
}

func TestApplyTemplateDeduplicatesSectionsFirstOccurrenceWins(t *testing.T) {
	design := ApplyTemplate(testTemplate(), VendorData{StoreName: "Wilson's", Slug: "wilsons"})

	if len(design.Sections) != 3 {
		t.Fatalf("expected 3 deduplicated sections, got %d", len(design.Sections))
	}
	var hero *Section
	for i := range design.Sections {
		if design.Sections[i].SectionKey == "hero" {
			hero = &design.Sections[i]
		}
	}
	if hero == nil {
		t.Fatal("hero section missing")
	}
	if hero.SectionOrder != 0 {
		t.Fatalf("first occurrence's order should win, got %d", hero.SectionOrder)
	}
}

func TestApplyTemplateAssignsPerSectionPositions(t *testing.T) {
	design := ApplyTemplate(testTemplate(), VendorData{StoreName: "Wilson's", Slug: "wilsons"})

	var heroPositions []int
	for _, c := range design.Components {
		if c.SectionKey == "hero" {
			heroPositions = append(heroPositions, c.PositionOrder)
		}
	}
	// both hero entries contribute to the same counter
	if !reflect.DeepEqual(heroPositions, []int{0, 1, 2}) {
		t.Fatalf("expected contiguous per-section positions, got %v", heroPositions)
	}
	for _, c := range design.Components {
		if c.SectionKey != "hero" && c.PositionOrder != 0 {
			t.Fatalf("singleton section component should sit at 0, got %d for %s", c.PositionOrder, c.SectionKey)
		}
	}
}

func TestApplyTemplateIsDeterministic(t *testing.T) {
	vendor := VendorData{StoreName: "Wilson's", Slug: "wilsons"}
	first := ApplyTemplate(testTemplate(), vendor)
	second := ApplyTemplate(testTemplate(), vendor)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different designs")
	}
}

func TestApplyTemplateResolvesWilsonsScenario(t *testing.T) {
	vendor := VendorData{StoreName: "Wilson's", Slug: "wilsons"}
	design := ApplyTemplate(testTemplate(), vendor)

	var texts []string
	for _, c := range design.Components {
		if c.ComponentKey == "text" {
			texts = append(texts, c.Props["text"].(string))
		}
	}
	if len(texts) != 2 {
		t.Fatalf("expected 2 text components, got %d", len(texts))
	}
	if texts[0] != "Wilson's" {
		t.Fatalf("expected store name, got %q", texts[0])
	}
	if texts[1] != DefaultTagline {
		t.Fatalf("expected default tagline, got %q", texts[1])
	}
}

func TestApplyTemplateNilTemplate(t *testing.T) {
	design := ApplyTemplate(nil, VendorData{})
	if len(design.Sections) != 0 || len(design.Components) != 0 {
		t.Fatal("nil template should produce an empty design")
	}
}

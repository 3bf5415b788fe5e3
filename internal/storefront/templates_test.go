package storefront

import (
	"strings"
	"testing"

	"github.com/leafline/leafline-backend/pkg/db/models"
	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/types"
)

func TestAssembleTemplateGroupsRowsBySection(t *testing.T) {
	rows := []models.TemplateComponent{
		{TemplateID: "t", SectionKey: "hero", SectionOrder: 0, PageType: enums.PageTypeHome, ComponentKey: "text", PositionOrder: 0, Props: types.JSONMap{"text": "Hi"}},
		{TemplateID: "t", SectionKey: "hero", SectionOrder: 0, PageType: enums.PageTypeHome, ComponentKey: "button", PositionOrder: 1, Props: types.JSONMap{"label": "Shop"}},
		{TemplateID: "t", SectionKey: "footer", SectionOrder: 999, PageType: enums.PageTypeAll, ComponentKey: "smart_footer", PositionOrder: 0},
	}

	tmpl := assembleTemplate("t", rows)
	if tmpl.TemplateID != "t" {
		t.Fatalf("template id wrong: %q", tmpl.TemplateID)
	}
	if len(tmpl.AllPages) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(tmpl.AllPages))
	}
	if len(tmpl.AllPages[0].Components) != 2 {
		t.Fatalf("hero must carry both components, got %d", len(tmpl.AllPages[0].Components))
	}
}

func TestAssembleTemplateFirstRowWinsSectionMetadata(t *testing.T) {
	rows := []models.TemplateComponent{
		{TemplateID: "t", SectionKey: "hero", SectionOrder: 0, PageType: enums.PageTypeHome, ComponentKey: "text", Props: types.JSONMap{"text": "Hi"}},
		{TemplateID: "t", SectionKey: "hero", SectionOrder: 7, PageType: enums.PageTypeShop, ComponentKey: "button", Props: types.JSONMap{"label": "Shop"}},
	}

	tmpl := assembleTemplate("t", rows)
	if len(tmpl.AllPages) != 1 {
		t.Fatalf("same key must fold into one section, got %d", len(tmpl.AllPages))
	}
	if tmpl.AllPages[0].SectionOrder != 0 || tmpl.AllPages[0].PageType != enums.PageTypeHome {
		t.Fatalf("first row must win section metadata: %+v", tmpl.AllPages[0])
	}
}

func TestAssembleTemplateClonesProps(t *testing.T) {
	props := types.JSONMap{"text": "Hi"}
	rows := []models.TemplateComponent{
		{TemplateID: "t", SectionKey: "hero", ComponentKey: "text", Props: props},
	}
	tmpl := assembleTemplate("t", rows)
	tmpl.AllPages[0].Components[0].Props["text"] = "changed"
	if props["text"] != "Hi" {
		t.Fatal("catalog row props must not alias the assembled template")
	}
}

func TestBuiltinTemplateLookup(t *testing.T) {
	if BuiltinTemplate(DarkLuxuryTemplateID) == nil {
		t.Fatal("dark-luxury builtin must exist")
	}
	if BuiltinTemplate("neon-mint") != nil {
		t.Fatal("unknown ids must not resolve to a builtin")
	}
}

func TestBuiltinTemplateAppliesCleanly(t *testing.T) {
	tmpl := BuiltinTemplate(DarkLuxuryTemplateID)
	design := ApplyTemplate(tmpl, testVendor())
	design, _ = AddComplianceSections(design, testVendor())

	result := newTestValidator().Validate(design, testVendor())
	for _, e := range result.Errors {
		t.Errorf("builtin template produced invalid design: %s", e)
	}
	for _, c := range design.Components {
		for _, v := range c.Props {
			s, ok := v.(string)
			if ok && strings.Contains(s, "{{vendor.") {
				t.Fatalf("unresolved token survived application: %q", s)
			}
		}
	}
}

func TestBuiltinTemplateCoversStructuralSections(t *testing.T) {
	tmpl := BuiltinTemplate(DarkLuxuryTemplateID)
	keys := map[string]bool{}
	for _, section := range tmpl.AllPages {
		keys[section.SectionKey] = true
		if !ValidSection(section.SectionKey) {
			t.Fatalf("builtin uses unknown section key %q", section.SectionKey)
		}
	}
	for _, want := range []string{"header", "hero", "products", "footer"} {
		if !keys[want] {
			t.Fatalf("builtin missing %q section", want)
		}
	}
}

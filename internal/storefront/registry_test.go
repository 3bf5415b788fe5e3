package storefront

import (
	"sort"
	"strings"
	"testing"

	"github.com/leafline/leafline-backend/pkg/types"
)

func TestRegistryLookups(t *testing.T) {
	reg := DefaultRegistry()

	if !reg.Contains("text") || !reg.Contains("smart_header") {
		t.Fatal("catalog entries missing")
	}
	if reg.Contains("hologram") {
		t.Fatal("unknown key must not be in the catalog")
	}
	if !reg.Smart("smart_product_grid") {
		t.Fatal("smart_ components must report smart")
	}
	if reg.Smart("text") || reg.Smart("hologram") {
		t.Fatal("atomic or unknown keys must not report smart")
	}

	spec, ok := reg.Spec("smart_footer")
	if !ok || !spec.AutoWired || spec.Kind != KindSmart {
		t.Fatalf("smart_footer spec wrong: %+v", spec)
	}
}

func TestRegistryKeysSortedAndComplete(t *testing.T) {
	keys := DefaultRegistry().Keys()
	if !sort.StringsAreSorted(keys) {
		t.Fatalf("keys must be sorted, got %v", keys)
	}

	smart := 0
	for _, k := range keys {
		if strings.HasPrefix(k, "smart_") {
			smart++
		}
	}
	if smart != 10 {
		t.Fatalf("expected 10 smart components, got %d", smart)
	}
	if len(keys) != 19 {
		t.Fatalf("expected 19 catalog entries, got %d", len(keys))
	}
}

func TestCheckPropsRequiredFields(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		name  string
		key   string
		props types.JSONMap
		valid bool
	}{
		{"text ok", "text", types.JSONMap{"text": "copy", "alignment": "center"}, true},
		{"text missing required", "text", types.JSONMap{"alignment": "center"}, false},
		{"text bad alignment", "text", types.JSONMap{"text": "copy", "alignment": "justified"}, false},
		{"spacer ok", "spacer", types.JSONMap{"height": float64(24)}, true},
		{"spacer string height", "spacer", types.JSONMap{"height": "24"}, false},
		{"image missing src", "image", types.JSONMap{"alt": "logo"}, false},
		{"button ok", "button", types.JSONMap{"label": "Shop", "href": "/shop"}, true},
		{"unknown extra props tolerated", "text", types.JSONMap{"text": "copy", "custom_thing": true}, true},
		{"schemaless entry", "divider", types.JSONMap{"anything": "goes"}, true},
		{"unknown key skipped", "hologram", types.JSONMap{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := reg.CheckProps(tt.key, tt.props)
			if tt.valid && len(problems) > 0 {
				t.Fatalf("expected valid props, got %v", problems)
			}
			if !tt.valid && len(problems) == 0 {
				t.Fatal("expected schema violations")
			}
		})
	}
}

func TestCheckPropsNamesComponent(t *testing.T) {
	problems := DefaultRegistry().CheckProps("text", types.JSONMap{})
	if len(problems) == 0 {
		t.Fatal("expected a violation")
	}
	if !strings.Contains(problems[0], `component "text"`) {
		t.Fatalf("violation must name the component, got %q", problems[0])
	}
}

func TestValidSectionAllowList(t *testing.T) {
	for _, key := range []string{"header", "hero", "lab-results", "footer"} {
		if !ValidSection(key) {
			t.Fatalf("%q must be allowed", key)
		}
	}
	if ValidSection("secret-lab") || ValidSection("") {
		t.Fatal("unknown section keys must be rejected")
	}
}

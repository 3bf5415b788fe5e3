package storefront

import (
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/leafline/leafline-backend/pkg/types"
)

// ComponentKind partitions the catalog by rendering behavior.
type ComponentKind string

const (
	KindAtomic    ComponentKind = "atomic"
	KindComposite ComponentKind = "composite"
	KindSmart     ComponentKind = "smart"
)

// ComponentSpec is one catalog entry: prop schema, auto-wiring requirement,
// and usage guidance for the design generators.
type ComponentSpec struct {
	Key       string
	Kind      ComponentKind
	AutoWired bool
	Guidance  string
	schema    *jsonschema.Schema
}

// Registry is the static component catalog. Pure data, no behavior beyond
// lookups and prop-schema checks.
type Registry struct {
	specs map[string]ComponentSpec
	keys  []string
}

// Smart reports whether the key names a data-wired component.
func (r *Registry) Smart(key string) bool {
	spec, ok := r.specs[key]
	return ok && spec.Kind == KindSmart
}

// Contains reports whether the key is in the catalog.
func (r *Registry) Contains(key string) bool {
	_, ok := r.specs[key]
	return ok
}

// Spec returns the catalog entry for a key.
func (r *Registry) Spec(key string) (ComponentSpec, bool) {
	spec, ok := r.specs[key]
	return spec, ok
}

// Keys returns every catalog key sorted.
func (r *Registry) Keys() []string {
	return r.keys
}

// CheckProps validates a prop bag against the entry's schema. Unknown keys in
// the bag are tolerated; violations of declared shapes are reported.
func (r *Registry) CheckProps(key string, props types.JSONMap) []string {
	spec, ok := r.specs[key]
	if !ok || spec.schema == nil {
		return nil
	}
	value := map[string]any(props)
	if value == nil {
		value = map[string]any{}
	}
	if err := spec.schema.Validate(value); err != nil {
		return flattenSchemaError(key, err)
	}
	return nil
}

func flattenSchemaError(key string, err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("component %q props invalid: %v", key, err)}
	}
	leaves := ve.BasicOutput().Errors
	out := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		if leaf.Error == "" || strings.HasPrefix(leaf.Error, "doesn't validate with") {
			continue
		}
		loc := leaf.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		out = append(out, fmt.Sprintf("component %q props%s: %s", key, loc, leaf.Error))
	}
	if len(out) == 0 {
		out = append(out, fmt.Sprintf("component %q props invalid: %v", key, ve))
	}
	return out
}

// ValidSectionKeys is the closed allow-list of section keys a design may use.
var ValidSectionKeys = []string{
	"header",
	"hero",
	"features",
	"products",
	"product-detail",
	"categories",
	"about",
	"testimonials",
	"locations",
	"stats",
	"faq",
	"contact",
	"cta",
	"legal",
	"lab-results",
	"shipping-info",
	"returns-info",
	"footer",
}

var validSectionSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(ValidSectionKeys))
	for _, key := range ValidSectionKeys {
		set[key] = struct{}{}
	}
	return set
}()

// ValidSection reports whether the key is in the section allow-list.
func ValidSection(key string) bool {
	_, ok := validSectionSet[key]
	return ok
}

func mustSchema(name, body string) *jsonschema.Schema {
	return jsonschema.MustCompileString(name+".schema.json", body)
}

// DefaultRegistry builds the full catalog.
func DefaultRegistry() *Registry {
	specs := []ComponentSpec{
		{
			Key: "text", Kind: KindAtomic,
			Guidance: "Body or heading copy. Keep alignment centered and colors within the brand palette.",
			schema: mustSchema("text", `{
				"type": "object",
				"properties": {
					"text": {"type": "string", "minLength": 1},
					"alignment": {"enum": ["left", "center", "right"]},
					"color": {"type": "string"},
					"font_size": {"type": ["number", "string"]},
					"font_weight": {"type": ["number", "string"]}
				},
				"required": ["text"]
			}`),
		},
		{
			Key: "image", Kind: KindAtomic,
			Guidance: "Static image. src is required, alt strongly encouraged.",
			schema: mustSchema("image", `{
				"type": "object",
				"properties": {
					"src": {"type": "string", "minLength": 1},
					"alt": {"type": "string"},
					"width": {"type": ["number", "string"]},
					"height": {"type": ["number", "string"]}
				},
				"required": ["src"]
			}`),
		},
		{
			Key: "button", Kind: KindAtomic,
			Guidance: "Call-to-action. label and href are required.",
			schema: mustSchema("button", `{
				"type": "object",
				"properties": {
					"label": {"type": "string", "minLength": 1},
					"href": {"type": "string"},
					"variant": {"enum": ["primary", "secondary", "ghost"]}
				},
				"required": ["label"]
			}`),
		},
		{
			Key: "spacer", Kind: KindAtomic,
			Guidance: "Vertical rhythm. Heights should come from the 8..100 rhythm scale.",
			schema: mustSchema("spacer", `{
				"type": "object",
				"properties": {"height": {"type": "number", "minimum": 0}},
				"required": ["height"]
			}`),
		},
		{
			Key: "icon", Kind: KindAtomic,
			Guidance: "Single decorative icon by name.",
			schema: mustSchema("icon", `{
				"type": "object",
				"properties": {"name": {"type": "string", "minLength": 1}, "size": {"type": "number"}},
				"required": ["name"]
			}`),
		},
		{
			Key: "divider", Kind: KindAtomic,
			Guidance: "Horizontal rule between content blocks.",
		},
		{
			Key: "badge", Kind: KindAtomic,
			Guidance: "Small label pill, e.g. THC percentage or NEW.",
			schema: mustSchema("badge", `{
				"type": "object",
				"properties": {"label": {"type": "string", "minLength": 1}},
				"required": ["label"]
			}`),
		},
		{
			Key: "product_card", Kind: KindComposite,
			Guidance: "One manually configured product tile.",
		},
		{
			Key: "product_grid", Kind: KindComposite,
			Guidance: "Static grid of manually configured product tiles.",
			schema: mustSchema("product_grid", `{
				"type": "object",
				"properties": {"columns": {"type": "number", "minimum": 1, "maximum": 6}}
			}`),
		},
		{
			Key: "smart_header", Kind: KindSmart, AutoWired: true,
			Guidance: "Site-wide navigation. Auto-wires logo, store name, and page links. One per site.",
		},
		{
			Key: "smart_footer", Kind: KindSmart, AutoWired: true,
			Guidance: "Site-wide footer with legal links and social. One per site.",
		},
		{
			Key: "smart_product_grid", Kind: KindSmart, AutoWired: true,
			Guidance: "Live product grid fed by the vendor's active catalog. Renders a coming-soon state with zero products.",
		},
		{
			Key: "smart_product_detail", Kind: KindSmart, AutoWired: true,
			Guidance: "Full product page body bound to the routed product.",
		},
		{
			Key: "smart_category_nav", Kind: KindSmart, AutoWired: true,
			Guidance: "Category chips built from the vendor's distinct product categories.",
		},
		{
			Key: "smart_location_map", Kind: KindSmart, AutoWired: true,
			Guidance: "Map plus cards for the vendor's active locations.",
		},
		{
			Key: "smart_testimonials", Kind: KindSmart, AutoWired: true,
			Guidance: "Review carousel fed by vendor reviews.",
		},
		{
			Key: "smart_stats_counter", Kind: KindSmart, AutoWired: true,
			Guidance: "Animated counters for product count, locations, and years active.",
		},
		{
			Key: "smart_faq", Kind: KindSmart, AutoWired: true,
			Guidance: "Accordion of common questions with compliance-safe answers.",
		},
		{
			Key: "smart_legal_page", Kind: KindSmart, AutoWired: true,
			Guidance: "Boilerplate legal copy for privacy, terms, and cookie pages.",
		},
	}

	reg := &Registry{specs: make(map[string]ComponentSpec, len(specs))}
	for _, spec := range specs {
		reg.specs[spec.Key] = spec
		reg.keys = append(reg.keys, spec.Key)
	}
	sort.Strings(reg.keys)
	return reg
}

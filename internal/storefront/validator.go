package storefront

import (
	"fmt"
	"sort"
	"strings"
)

var spacerRhythm = map[float64]struct{}{
	8: {}, 12: {}, 16: {}, 20: {}, 24: {}, 32: {}, 40: {}, 48: {}, 60: {}, 80: {}, 100: {},
}

var placeholderMarkers = []string{"[", "todo", "placeholder", "lorem ipsum"}

// Validator checks a design against structural invariants and vendor-data
// plausibility. Every rule is evaluated independently; all violations are
// collected rather than short-circuiting, and warnings never affect Valid.
type Validator struct {
	registry *Registry
}

// NewValidator binds the component catalog used for allow-list and prop
// schema checks.
func NewValidator(registry *Registry) *Validator {
	return &Validator{registry: registry}
}

func (v *Validator) Validate(design Design, vendor VendorData) ValidationResult {
	result := ValidationResult{Errors: []string{}, Warnings: []string{}}

	v.checkStructure(design, &result)
	v.checkAllowLists(design, &result)
	v.checkComponentProps(design, &result)
	v.checkPlaceholderText(design, &result)
	v.checkOrphans(design, &result)
	v.checkDuplicateSections(design, &result)
	v.checkVendorPlausibility(design, vendor, &result)
	v.checkStyleConsistency(design, &result)

	result.Valid = len(result.Errors) == 0
	return result
}

func (v *Validator) checkStructure(design Design, result *ValidationResult) {
	if !hasSection(design, "header") && !hasComponent(design, "smart_header") {
		result.Errors = append(result.Errors, "design is missing a header section or smart_header component")
	}
	if !hasSection(design, "footer") && !hasComponent(design, "smart_footer") {
		result.Errors = append(result.Errors, "design is missing a footer section or smart_footer component")
	}
	if len(design.Sections) < 4 {
		result.Errors = append(result.Errors, fmt.Sprintf("design has %d sections, at least 4 required", len(design.Sections)))
	}
	if !hasSection(design, "hero") {
		result.Errors = append(result.Errors, "design is missing a hero section")
	}

	smart := false
	for _, c := range design.Components {
		if strings.HasPrefix(c.ComponentKey, "smart_") {
			smart = true
			break
		}
	}
	if !smart {
		result.Errors = append(result.Errors, "design contains no smart components, the page would be fully static")
	}
}

func (v *Validator) checkAllowLists(design Design, result *ValidationResult) {
	for i, c := range design.Components {
		if !v.registry.Contains(c.ComponentKey) {
			result.Errors = append(result.Errors, fmt.Sprintf("component %d has unknown component_key %q", i, c.ComponentKey))
		}
	}
	for _, s := range design.Sections {
		if !ValidSection(s.SectionKey) {
			result.Errors = append(result.Errors, fmt.Sprintf("section_key %q is not in the allowed section list", s.SectionKey))
		}
	}
}

func (v *Validator) checkComponentProps(design Design, result *ValidationResult) {
	for _, c := range design.Components {
		if !v.registry.Contains(c.ComponentKey) {
			continue
		}
		result.Errors = append(result.Errors, v.registry.CheckProps(c.ComponentKey, c.Props)...)
	}
}

func (v *Validator) checkPlaceholderText(design Design, result *ValidationResult) {
	for i, c := range design.Components {
		if c.ComponentKey != "text" {
			continue
		}
		text, ok := c.Props["text"].(string)
		if !ok {
			continue
		}
		lower := strings.ToLower(text)
		for _, marker := range placeholderMarkers {
			if strings.Contains(lower, marker) {
				result.Errors = append(result.Errors, fmt.Sprintf("component %d contains unfinished placeholder text: %q", i, text))
				break
			}
		}
	}
}

func (v *Validator) checkOrphans(design Design, result *ValidationResult) {
	known := map[string]struct{}{}
	for _, s := range design.Sections {
		known[s.SectionKey] = struct{}{}
	}
	for i, c := range design.Components {
		if _, ok := known[c.SectionKey]; !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("component %d references missing section %q", i, c.SectionKey))
		}
	}
}

func (v *Validator) checkDuplicateSections(design Design, result *ValidationResult) {
	counts := map[string]int{}
	for _, s := range design.Sections {
		counts[s.SectionKey]++
	}
	var dups []string
	for key, n := range counts {
		if n > 1 {
			dups = append(dups, key)
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		result.Errors = append(result.Errors, fmt.Sprintf("duplicate section keys: %s", strings.Join(dups, ", ")))
	}
}

func (v *Validator) checkVendorPlausibility(design Design, vendor VendorData, result *ValidationResult) {
	if hasComponent(design, "smart_product_grid") && vendor.ProductCount == 0 {
		result.Warnings = append(result.Warnings, "smart_product_grid present but vendor has 0 products, grid will render a coming-soon state")
	}
	if hasComponent(design, "smart_location_map") && vendor.LocationCount == 0 {
		result.Warnings = append(result.Warnings, "smart_location_map present but vendor has 0 locations")
	}

	if vendor.StoreName != "" {
		found := false
		for _, c := range design.Components {
			if c.ComponentKey != "text" {
				continue
			}
			if text, ok := c.Props["text"].(string); ok && strings.Contains(text, vendor.StoreName) {
				found = true
				break
			}
		}
		if !found {
			result.Warnings = append(result.Warnings, fmt.Sprintf("no text component mentions the store name %q", vendor.StoreName))
		}
	}
}

func (v *Validator) checkStyleConsistency(design Design, result *ValidationResult) {
	colors := map[string]struct{}{}
	for i, c := range design.Components {
		switch c.ComponentKey {
		case "spacer":
			if height, ok := numericProp(c.Props, "height"); ok {
				if _, onScale := spacerRhythm[height]; !onScale {
					result.Warnings = append(result.Warnings, fmt.Sprintf("component %d spacer height %g is off the rhythm scale", i, height))
				}
			}
		case "text":
			if color, ok := c.Props["color"].(string); ok && color != "" {
				colors[strings.ToLower(color)] = struct{}{}
			}
			if alignment, ok := c.Props["alignment"].(string); ok && alignment != "center" {
				result.Warnings = append(result.Warnings, fmt.Sprintf("component %d text alignment %q is not centered", i, alignment))
			}
		}
	}
	if len(colors) > 5 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("text components use %d distinct colors, palette should stay within 5", len(colors)))
	}
}

func hasSection(design Design, key string) bool {
	for _, s := range design.Sections {
		if s.SectionKey == key {
			return true
		}
	}
	return false
}

func hasComponent(design Design, key string) bool {
	for _, c := range design.Components {
		if c.ComponentKey == key {
			return true
		}
	}
	return false
}

func numericProp(props map[string]any, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}

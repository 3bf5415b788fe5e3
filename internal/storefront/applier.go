package storefront

// ApplyTemplate copies a template into a vendor-specific design, resolving
// every component's placeholder props. Sections are deduplicated by
// section_key with first-occurrence-wins ordering; later duplicates only
// contribute components to the already-admitted section.
//
// position_order is scoped per section, contiguous from 0, so the live editor
// can reorder within a section without renumbering the whole design.
func ApplyTemplate(tmpl *Template, vendor VendorData) Design {
	design := Design{}
	if tmpl == nil {
		return design
	}

	seen := map[string]struct{}{}
	counters := map[string]int{}

	for _, def := range tmpl.AllPages {
		if _, dup := seen[def.SectionKey]; !dup {
			seen[def.SectionKey] = struct{}{}
			design.Sections = append(design.Sections, Section{
				SectionKey:   def.SectionKey,
				SectionOrder: def.SectionOrder,
				PageType:     def.PageType,
			})
		}
		for _, comp := range def.Components {
			design.Components = append(design.Components, Component{
				SectionKey:    def.SectionKey,
				ComponentKey:  comp.ComponentKey,
				Props:         ResolveProps(comp.Props, vendor),
				PositionOrder: counters[def.SectionKey],
			})
			counters[def.SectionKey]++
		}
	}
	return design
}

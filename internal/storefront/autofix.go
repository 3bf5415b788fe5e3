package storefront

import (
	"sort"

	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/types"
)

// AutoFix deterministically repairs the invariants the validator checks,
// without another completion round-trip. It is idempotent and pure; repairs
// are applied unconditionally rather than branching on specific errors.
// Orphan removal runs last so newly injected header/footer components are
// never mistaken for orphans.
func AutoFix(design Design) Design {
	out := cloneDesign(design)

	out = ensureHeader(out)
	out = ensureHero(out)
	out = ensureFooter(out)
	out = centerAllText(out)
	out = renumberSections(out)
	out = dropOrphans(out)

	return out
}

func ensureHeader(design Design) Design {
	if hasSection(design, "header") {
		return design
	}
	design.Sections = append([]Section{{
		SectionKey:   "header",
		SectionOrder: -1,
		PageType:     enums.PageTypeAll,
	}}, design.Sections...)
	design.Components = append([]Component{{
		SectionKey:    "header",
		ComponentKey:  "smart_header",
		Props:         types.JSONMap{},
		PositionOrder: 0,
	}}, design.Components...)
	return design
}

func ensureHero(design Design) Design {
	if hasSection(design, "hero") {
		return design
	}
	insertAt := -1
	for i, s := range design.Sections {
		if s.SectionOrder >= 0 {
			insertAt = i
			break
		}
	}
	if insertAt < 0 {
		insertAt = 1
		if insertAt > len(design.Sections) {
			insertAt = len(design.Sections)
		}
	}
	hero := Section{SectionKey: "hero", SectionOrder: 0, PageType: enums.PageTypeHome}
	design.Sections = append(design.Sections[:insertAt], append([]Section{hero}, design.Sections[insertAt:]...)...)
	return design
}

func ensureFooter(design Design) Design {
	if hasSection(design, "footer") {
		return design
	}
	design.Sections = append(design.Sections, Section{
		SectionKey:   "footer",
		SectionOrder: 999,
		PageType:     enums.PageTypeAll,
	})
	design.Components = append(design.Components, Component{
		SectionKey:    "footer",
		ComponentKey:  "smart_footer",
		Props:         types.JSONMap{},
		PositionOrder: 0,
	})
	return design
}

func centerAllText(design Design) Design {
	for i, c := range design.Components {
		if c.ComponentKey != "text" {
			continue
		}
		if design.Components[i].Props == nil {
			design.Components[i].Props = types.JSONMap{}
		}
		design.Components[i].Props["alignment"] = "center"
	}
	return design
}

func renumberSections(design Design) Design {
	sort.SliceStable(design.Sections, func(i, j int) bool {
		return design.Sections[i].SectionOrder < design.Sections[j].SectionOrder
	})
	next := 0
	for i := range design.Sections {
		switch design.Sections[i].SectionKey {
		case "header":
			design.Sections[i].SectionOrder = -1
		case "footer":
			design.Sections[i].SectionOrder = 999
		default:
			design.Sections[i].SectionOrder = next
			next++
		}
	}
	return design
}

func dropOrphans(design Design) Design {
	known := map[string]struct{}{}
	for _, s := range design.Sections {
		known[s.SectionKey] = struct{}{}
	}
	kept := design.Components[:0]
	for _, c := range design.Components {
		if _, ok := known[c.SectionKey]; ok {
			kept = append(kept, c)
		}
	}
	design.Components = kept
	return design
}

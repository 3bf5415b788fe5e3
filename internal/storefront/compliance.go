package storefront

import (
	"fmt"

	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/types"
)

// AddComplianceSections splices a hand-authored FAQ section immediately before
// the footer and renumbers every section (header -1, footer 999, all others
// contiguously from 0). Without a footer the pass is a safe no-op; the
// returned bool
// reports whether the section was added so callers can log the skip.
func AddComplianceSections(design Design, vendor VendorData) (Design, bool) {
	footerIdx := -1
	for i, s := range design.Sections {
		if s.SectionKey == "footer" {
			footerIdx = i
			break
		}
	}
	if footerIdx < 0 {
		return design, false
	}
	for _, s := range design.Sections {
		if s.SectionKey == "faq" {
			return design, false
		}
	}

	out := cloneDesign(design)

	faq := Section{SectionKey: "faq", PageType: enums.PageTypeFAQ}
	out.Sections = append(out.Sections[:footerIdx], append([]Section{faq}, out.Sections[footerIdx:]...)...)

	next := 0
	for i := range out.Sections {
		switch out.Sections[i].SectionKey {
		case "header":
			out.Sections[i].SectionOrder = -1
		case "footer":
			out.Sections[i].SectionOrder = 999
		default:
			out.Sections[i].SectionOrder = next
			next++
		}
	}

	out.Components = append(out.Components, complianceFAQComponents(vendor)...)
	return out, true
}

func complianceFAQComponents(vendor VendorData) []Component {
	entries := []struct {
		question string
		answer   string
	}{
		{
			question: "Is it legal to buy cannabis online?",
			answer:   "Yes, where permitted by state law. Orders are verified against local regulations and require age confirmation at delivery or pickup.",
		},
		{
			question: "How do I know the products are safe?",
			answer:   "Every product is tested by independent licensed labs. Certificates of analysis are published on the lab results page.",
		},
		{
			question: "What payment methods are accepted?",
			answer:   "Accepted payment methods are shown at checkout and vary by state. Cash and debit are most widely supported.",
		},
		{
			question: fmt.Sprintf("How fast does %s deliver?", vendor.StoreName),
			answer:   "Delivery windows depend on your location and are confirmed when the order is placed.",
		},
	}

	components := make([]Component, 0, len(entries)*4+2)
	position := 0
	push := func(key string, props types.JSONMap) {
		components = append(components, Component{
			SectionKey:    "faq",
			ComponentKey:  key,
			Props:         props,
			PositionOrder: position,
		})
		position++
	}

	push("text", types.JSONMap{"text": "Frequently Asked Questions", "alignment": "center", "font_size": 36})
	push("spacer", types.JSONMap{"height": float64(24)})
	for i, entry := range entries {
		push("text", types.JSONMap{"text": entry.question, "alignment": "center", "font_size": 20, "font_weight": 600})
		push("spacer", types.JSONMap{"height": float64(12)})
		push("text", types.JSONMap{"text": entry.answer, "alignment": "center", "font_size": 16})
		if i < len(entries)-1 {
			push("divider", types.JSONMap{})
		}
	}
	return components
}

package storefront

import (
	"fmt"
	"strings"

	"github.com/leafline/leafline-backend/pkg/enums"
)

const designSystemPrompt = `You are a storefront designer for a licensed cannabis commerce platform.
You respond with a single raw JSON object and nothing else. No markdown, no commentary.
The object has exactly two keys:
  "sections": [{"section_key", "section_order", "page_type"}]
  "components": [{"section_key", "component_key", "props", "position_order"}]
Rules:
- section_order -1 is reserved for the header, 999 for the footer.
- position_order starts at 0 within each section.
- Text must be finished copy. Never emit TODO, lorem ipsum, bracketed notes, or placeholder markers.
- Text alignment is "center". Spacer heights come from 8,12,16,20,24,32,40,48,60,80,100.
- Keep text colors within a palette of at most 5 colors.`

func sitePrompt(vendor VendorData, registry *Registry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Design a storefront for %q (type %s).\n", vendor.StoreName, vendor.VendorType)
	writeVendorFacts(&b, vendor)
	fmt.Fprintf(&b, "\nProduce 5 to 8 sections covering the whole site, always including header, hero, and footer.\n")
	writeCatalog(&b, registry)
	return b.String()
}

func groupPrompt(vendor VendorData, registry *Registry, group pageGroup) string {
	var b strings.Builder
	pages := make([]string, len(group.pages))
	for i, p := range group.pages {
		pages[i] = string(p)
	}
	fmt.Fprintf(&b, "Design only the %s pages (%s) of the storefront for %q (type %s).\n",
		group.name, strings.Join(pages, ", "), vendor.StoreName, vendor.VendorType)
	writeVendorFacts(&b, vendor)
	fmt.Fprintf(&b, "\nEmit only sections and components for these pages. Include the site header and footer sections so the group is self-contained; they are deduplicated on merge.\n")
	writeCatalog(&b, registry)
	return b.String()
}

func repairPrompt(raw string, errs []string) string {
	var b strings.Builder
	b.WriteString("The previous design JSON failed validation. Fix every listed problem and return the corrected JSON object only.\n\nProblems:\n")
	for _, e := range errs {
		fmt.Fprintf(&b, "- %s\n", e)
	}
	b.WriteString("\nPrevious design:\n")
	b.WriteString(raw)
	return b.String()
}

func writeVendorFacts(b *strings.Builder, vendor VendorData) {
	fmt.Fprintf(b, "Slug: %s\n", vendor.Slug)
	fmt.Fprintf(b, "Tagline: %s\n", taglineOrDefault(vendor))
	fmt.Fprintf(b, "Active products: %d", vendor.ProductCount)
	if len(vendor.ProductCategories) > 0 {
		fmt.Fprintf(b, " (categories: %s)", strings.Join(vendor.ProductCategories, ", "))
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "Locations: %d\n", vendor.LocationCount)
	if len(vendor.BrandColors) > 0 {
		fmt.Fprintf(b, "Brand colors: %s\n", strings.Join(vendor.BrandColors, ", "))
	}
	if vendor.WholesaleEnabled {
		b.WriteString("Wholesale is enabled.\n")
	}
}

func writeCatalog(b *strings.Builder, registry *Registry) {
	fmt.Fprintf(b, "\nAllowed section keys: %s\n", strings.Join(ValidSectionKeys, ", "))
	b.WriteString("Allowed components:\n")
	for _, key := range registry.Keys() {
		spec, _ := registry.Spec(key)
		fmt.Fprintf(b, "- %s: %s\n", key, spec.Guidance)
	}
}

type pageGroup struct {
	name  string
	pages []enums.PageType
}

// The five fixed page groups of the parallel strategy.
var pageGroups = []pageGroup{
	{name: "core", pages: []enums.PageType{enums.PageTypeHome, enums.PageTypeShop}},
	{name: "catalog", pages: []enums.PageType{enums.PageTypeProduct, enums.PageTypeAbout, enums.PageTypeContact}},
	{name: "support", pages: []enums.PageType{enums.PageTypeFAQ, enums.PageTypeLabResults}},
	{name: "legal", pages: []enums.PageType{enums.PageTypePrivacy, enums.PageTypeTerms, enums.PageTypeCookies}},
	{name: "fulfillment", pages: []enums.PageType{enums.PageTypeShipping, enums.PageTypeReturns}},
}

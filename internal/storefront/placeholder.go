package storefront

import (
	"strings"

	"github.com/leafline/leafline-backend/pkg/types"
)

// Defaults substituted when the vendor record lacks the field.
const (
	DefaultTagline = "Premium cannabis delivered with care"
	DefaultLogoURL = "/assets/logo-placeholder.svg"
)

// The closed set of recognized placeholder tokens. Unknown {{...}} tokens are
// left verbatim so older templates survive future token additions.
const (
	tokenStoreName = "{{vendor.store_name}}"
	tokenSlug      = "{{vendor.slug}}"
	tokenTagline   = "{{vendor.store_tagline}}"
	tokenLogoURL   = "{{vendor.logo_url}}"
)

// ResolveProps substitutes every recognized {{vendor.*}} token in string-valued
// props with the vendor field, falling back to defaults for absent fields.
// Non-string values and strings without tokens pass through unchanged. The
// function is pure: the input map is never mutated.
func ResolveProps(props types.JSONMap, vendor VendorData) types.JSONMap {
	if props == nil {
		return nil
	}
	out := make(types.JSONMap, len(props))
	for key, value := range props {
		str, ok := value.(string)
		if !ok || !strings.Contains(str, "{{") {
			out[key] = value
			continue
		}
		out[key] = resolveString(str, vendor)
	}
	return out
}

func resolveString(s string, vendor VendorData) string {
	s = strings.ReplaceAll(s, tokenStoreName, vendor.StoreName)
	s = strings.ReplaceAll(s, tokenSlug, vendor.Slug)
	s = strings.ReplaceAll(s, tokenTagline, taglineOrDefault(vendor))
	s = strings.ReplaceAll(s, tokenLogoURL, logoOrDefault(vendor))
	return s
}

func taglineOrDefault(vendor VendorData) string {
	if vendor.StoreTagline != nil && *vendor.StoreTagline != "" {
		return *vendor.StoreTagline
	}
	return DefaultTagline
}

func logoOrDefault(vendor VendorData) string {
	if vendor.LogoURL != nil && *vendor.LogoURL != "" {
		return *vendor.LogoURL
	}
	return DefaultLogoURL
}

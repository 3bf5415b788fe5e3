package enums

import "fmt"

// PageType scopes a storefront section to one page of the generated site.
// PageTypeAll marks singleton sections (header/footer) rendered on every page.
type PageType string

const (
	PageTypeHome       PageType = "home"
	PageTypeShop       PageType = "shop"
	PageTypeProduct    PageType = "product"
	PageTypeAbout      PageType = "about"
	PageTypeContact    PageType = "contact"
	PageTypeFAQ        PageType = "faq"
	PageTypeLabResults PageType = "lab-results"
	PageTypePrivacy    PageType = "privacy"
	PageTypeTerms      PageType = "terms"
	PageTypeCookies    PageType = "cookies"
	PageTypeShipping   PageType = "shipping"
	PageTypeReturns    PageType = "returns"
	PageTypeAll        PageType = "all"
)

var validPageTypes = []PageType{
	PageTypeHome,
	PageTypeShop,
	PageTypeProduct,
	PageTypeAbout,
	PageTypeContact,
	PageTypeFAQ,
	PageTypeLabResults,
	PageTypePrivacy,
	PageTypeTerms,
	PageTypeCookies,
	PageTypeShipping,
	PageTypeReturns,
	PageTypeAll,
}

// String implements fmt.Stringer.
func (p PageType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PageType.
func (p PageType) IsValid() bool {
	for _, candidate := range validPageTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePageType converts raw input into a PageType.
func ParsePageType(value string) (PageType, error) {
	for _, candidate := range validPageTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid page type %q", value)
}

package enums

import "fmt"

// VendorType represents the canonical vendor_type enum in Postgres.
type VendorType string

const (
	VendorTypeDispensary VendorType = "dispensary"
	VendorTypeBrand      VendorType = "brand"
	VendorTypeDelivery   VendorType = "delivery"
)

var validVendorTypes = []VendorType{
	VendorTypeDispensary,
	VendorTypeBrand,
	VendorTypeDelivery,
}

// String implements fmt.Stringer.
func (v VendorType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VendorType.
func (v VendorType) IsValid() bool {
	for _, candidate := range validVendorTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVendorType converts raw input into a VendorType.
func ParseVendorType(value string) (VendorType, error) {
	for _, candidate := range validVendorTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vendor type %q", value)
}

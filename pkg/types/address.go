package types

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Address maps the address_t composite column on locations. Line1, City,
// State and PostalCode are required; Country defaults to US.
type Address struct {
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	GeoHash    *string `json:"geohash,omitempty"`
}

// Value marshals into the Postgres composite literal, rejecting rows missing
// a required field.
func (a Address) Value() (driver.Value, error) {
	for field, value := range map[string]string{
		"line1":       a.Line1,
		"city":        a.City,
		"state":       a.State,
		"postal_code": a.PostalCode,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("address: missing %s", field)
		}
	}

	country := strings.TrimSpace(a.Country)
	if country == "" {
		country = "US"
	}

	parts := []string{
		compositeQuote(a.Line1),
		compositeQuoteNullable(a.Line2),
		compositeQuote(a.City),
		compositeQuote(a.State),
		compositeQuote(a.PostalCode),
		compositeQuote(country),
		strconv.FormatFloat(a.Lat, 'f', -1, 64),
		strconv.FormatFloat(a.Lng, 'f', -1, 64),
		compositeQuoteNullable(a.GeoHash),
	}

	return "(" + strings.Join(parts, ",") + ")", nil
}

// Scan decodes the Postgres composite literal.
func (a *Address) Scan(value interface{}) error {
	if value == nil {
		*a = Address{}
		return nil
	}

	raw, ok := toString(value)
	if !ok {
		return fmt.Errorf("address: unsupported scan type %T", value)
	}

	fields, err := splitComposite(raw, 9)
	if err != nil {
		return err
	}

	a.Line1 = fields[0]
	a.Line2 = compositeNullable(fields[1])
	a.City = fields[2]
	a.State = fields[3]
	a.PostalCode = fields[4]

	country := strings.TrimSpace(fields[5])
	if country == "" || compositeIsNull(fields[5]) {
		country = "US"
	}
	a.Country = country

	lat, err := parseCompositeFloat(fields[6], "lat")
	if err != nil {
		return err
	}
	a.Lat = lat

	lng, err := parseCompositeFloat(fields[7], "lng")
	if err != nil {
		return err
	}
	a.Lng = lng

	a.GeoHash = compositeNullable(fields[8])

	return nil
}

func parseCompositeFloat(field, name string) (float64, error) {
	if field == "" || compositeIsNull(field) {
		return 0, fmt.Errorf("address: %s missing", name)
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("address: parse %s %w", name, err)
	}
	return v, nil
}

func toString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

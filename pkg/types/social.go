package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Social maps the social_t composite column on vendors. Every field is
// optional.
type Social struct {
	Twitter   *string `json:"twitter,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	YouTube   *string `json:"youtube,omitempty"`
	Website   *string `json:"website,omitempty"`
}

// Value marshals into the Postgres composite literal.
func (s Social) Value() (driver.Value, error) {
	parts := []string{
		compositeQuoteNullable(s.Twitter),
		compositeQuoteNullable(s.Facebook),
		compositeQuoteNullable(s.Instagram),
		compositeQuoteNullable(s.LinkedIn),
		compositeQuoteNullable(s.YouTube),
		compositeQuoteNullable(s.Website),
	}
	return "(" + strings.Join(parts, ",") + ")", nil
}

// Scan decodes the Postgres composite literal.
func (s *Social) Scan(value interface{}) error {
	if value == nil {
		*s = Social{}
		return nil
	}

	raw, ok := toString(value)
	if !ok {
		return fmt.Errorf("social: unsupported scan type %T", value)
	}

	fields, err := splitComposite(raw, 6)
	if err != nil {
		return err
	}

	s.Twitter = compositeNullable(fields[0])
	s.Facebook = compositeNullable(fields[1])
	s.Instagram = compositeNullable(fields[2])
	s.LinkedIn = compositeNullable(fields[3])
	s.YouTube = compositeNullable(fields[4])
	s.Website = compositeNullable(fields[5])

	return nil
}

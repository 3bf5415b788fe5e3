package types

import (
	"errors"
	"fmt"
	"strings"
)

var errCompositeFieldCount = errors.New("composite: unexpected field count")

// compositeQuote escapes and quotes one field of a composite literal.
func compositeQuote(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func compositeQuoteNullable(value *string) string {
	if value == nil {
		return "NULL"
	}
	return compositeQuote(*value)
}

func compositeIsNull(value string) bool {
	return strings.EqualFold(value, "NULL")
}

// splitComposite breaks "(a,b,...)" into raw fields, honoring quoting and
// backslash escapes. expected > 0 enforces the field count.
func splitComposite(raw string, expected int) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '(' || raw[len(raw)-1] != ')' {
		return nil, fmt.Errorf("composite: invalid format %q", raw)
	}
	content := raw[1 : len(raw)-1]

	var fields []string
	var b strings.Builder
	inQuotes := false
	escape := false

	for i := 0; i < len(content); i++ {
		ch := content[i]
		switch {
		case escape:
			b.WriteByte(ch)
			escape = false
		case ch == '\\':
			escape = true
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(ch)
		}
	}
	fields = append(fields, b.String())

	if expected > 0 && len(fields) != expected {
		return nil, fmt.Errorf("%w: got %d expected %d", errCompositeFieldCount, len(fields), expected)
	}
	return fields, nil
}

func compositeNullable(value string) *string {
	if compositeIsNull(value) {
		return nil
	}
	result := value
	return &result
}

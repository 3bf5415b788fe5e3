package db

import "strings"

// IsUniqueViolation reports whether err looks like a Postgres unique
// constraint violation. A non-empty constraint narrows the check to that
// constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	duplicate := strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
	if !duplicate {
		return false
	}
	if constraint == "" {
		return true
	}
	return strings.Contains(msg, constraint)
}

package normalization

import "strings"

// ParseInputString trims surrounding whitespace from free-form user input.
func ParseInputString(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// unique index agree on a canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

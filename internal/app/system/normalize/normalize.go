// Package normalize centralizes input normalization so stores and handlers
// agree on the canonical form of user-supplied values.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving its case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a free-text query parameter, preserving its case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Category lowercases and trims a category filter value. The pseudo-value
// "all" means "no filter" and normalizes to the empty string.
func Category(s string) string {
	c := strings.ToLower(strings.TrimSpace(s))
	if c == "all" {
		return ""
	}
	return c
}

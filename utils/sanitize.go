package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

const maxSanitizePasses = 8

// Sanitize strips all markup from user supplied plain text and trims surrounding space.
// Entities are unescaped since posts are stored as plain text, and the policy runs again
// on the result until it is stable, so entity-encoded markup is stripped as well.
func Sanitize(input string) string {
	current := input
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(sanitizer.Sanitize(current))
		if next == current {
			return strings.TrimSpace(next)
		}
		current = next
	}
	// still changing: keep the policy's escaped output
	return strings.TrimSpace(sanitizer.Sanitize(current))
}

package utils

import (
	"strings"
	"unicode/utf8"
)

// ExcerptLength is the default length used for list excerpts.
const ExcerptLength = 100

// Truncate shortens text to at most maxLength runes, cutting back to the last word
// boundary when one exists, and appends "...". Text that already fits is returned as is.
func Truncate(text string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:maxLength])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

package textutil

import (
	"strings"
	"unicode"
)

// Compact lowercases name and drops every rune that is not a letter or digit, so that
// "On Block", "on-block" and "OnBlock" all compact to "onblock".
func Compact(name string) string {
	var builder strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

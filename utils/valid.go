// utils/valid.go
package utils

import (
	"strings"
	"unicode"
)

// SanitizeText trims surrounding whitespace and drops control characters,
// keeping newlines and tabs so multi-line comments survive.
func SanitizeText(input string) string {
	input = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
	return strings.TrimSpace(input)
}

// SanitizeName normalises a display name, collapsing inner whitespace
func SanitizeName(input string) string {
	return strings.Join(strings.Fields(SanitizeText(input)), " ")
}

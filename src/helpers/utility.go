package helpers

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateUUID returns a new random identifier for tuples and datasets.
func GenerateUUID() string {
	return uuid.New().String()
}

// Underscore converts a CamelCase type name into its lower-case,
// underscore-separated form. "CreateUser" becomes "create_user" and
// "HTTPLog" becomes "http_log". The transform is pure; the same input
// always yields the same output.
func Underscore(name string) string {
	if name == "" {
		return ""
	}

	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Start a new word when the previous rune was lower case, or when
			// this upper-case rune ends an acronym ("HTTPLog" -> "http_log").
			if i > 0 {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
					b.WriteRune('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

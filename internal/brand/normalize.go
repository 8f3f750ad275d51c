// Package brand turns free-text brand labels into comparison keys and finds
// a brand inside one model's mention list.
package brand

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combining diacritical marks block, U+0300..U+036F
var diacritics = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
})

// Normalize maps a raw brand to its comparison key: lowercase, accents
// stripped, only [a-z0-9] kept. "Café" and "CAFE" both become "cafe".
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(diacritics))
	decomposed, _, err := transform.String(t, strings.ToLower(raw))
	if err != nil {
		decomposed = strings.ToLower(raw)
	}
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// IsActive reports whether a brand filter names a specific brand.
func IsActive(filter string) bool {
	return Normalize(filter) != ""
}

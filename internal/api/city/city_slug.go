package city

import (
	"strings"
	"unicode"
)

// Slugify lowercases name and collapses every run of whitespace into a single
// hyphen. Punctuation and non-ASCII letters are kept as they are.
func Slugify(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower))
	inSpace := false
	for _, r := range lower {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Package post builds and writes the Jekyll deal post for a product.
package post

import (
	"regexp"
	"strings"
)

// FallbackSlug is used when a title yields no usable characters.
const FallbackSlug = "offerta"

const maxSlugLen = 90

var (
	slugStrip    = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}-]+`)
	slugSeparate = regexp.MustCompile(`[\s\p{Z}_-]+`)
)

// Slugify derives a lowercase, hyphenated, filename-safe token from a title.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSeparate.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	// The cut can land right after a separator; trim again so the file name
	// never gets a doubled hyphen before the ASIN.
	if r := []rune(s); len(r) > maxSlugLen {
		s = strings.TrimRight(string(r[:maxSlugLen]), "-")
	}
	if s == "" {
		return FallbackSlug
	}
	return s
}

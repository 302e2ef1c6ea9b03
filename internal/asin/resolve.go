// Package asin turns user supplied product references into canonical ASINs.
package asin

import (
	"regexp"
	"strings"

	"dealpost/internal/domain"
)

var bareASIN = regexp.MustCompile(`^[A-Za-z0-9]{10}$`)

// urlPatterns are tried in order; the first match wins.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/dp/([A-Z0-9]{10})`),
	regexp.MustCompile(`(?i)/gp/product/([A-Z0-9]{10})`),
	regexp.MustCompile(`(?i)asin=([A-Z0-9]{10})`),
}

// Resolve normalizes a bare ASIN or a marketplace URL into an uppercase ASIN.
func Resolve(reference string) (string, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return "", &domain.MissingInputError{Field: "product reference"}
	}
	if bareASIN.MatchString(ref) {
		return strings.ToUpper(ref), nil
	}
	if id := FromURL(ref); id != "" {
		return id, nil
	}
	return "", &domain.InvalidReferenceError{Input: reference}
}

// FromURL extracts the ASIN embedded in a marketplace URL, or returns "".
func FromURL(url string) string {
	for _, re := range urlPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	return ""
}

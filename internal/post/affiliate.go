package post

import (
	"fmt"
	"net/url"
	"strings"
)

// AddAffiliateTag adds tag=<tag> to the query of rawURL unless a tag parameter
// is already present. A fragment stays after the query. Applying it twice is the
// same as applying it once.
func AddAffiliateTag(rawURL, tag string) string {
	if rawURL == "" || tag == "" {
		return rawURL
	}
	param := "tag=" + url.QueryEscape(tag)

	u, err := url.Parse(rawURL)
	if err != nil {
		if strings.Contains(rawURL, "tag=") {
			return rawURL
		}
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		return rawURL + sep + param
	}
	if u.Query().Has("tag") {
		return rawURL
	}
	if u.RawQuery == "" {
		u.RawQuery = param
	} else {
		u.RawQuery += "&" + param
	}
	return u.String()
}

// AffiliateURL returns the tagged link for a product, synthesizing one on the
// marketplace when the catalog did not return a detail page.
func AffiliateURL(detailURL, tag, marketplace, asin string) string {
	if detailURL == "" {
		detailURL = fmt.Sprintf("https://%s/dp/%s", marketplace, asin)
	}
	return AddAffiliateTag(detailURL, tag)
}

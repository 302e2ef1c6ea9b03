package scraper

import (
	"encoding/json"
	"fmt"
	"strings"
)

// pageData is what can be read off a product page.
type pageData struct {
	Title    string
	ImageURL string
	Price    string
}

func (d pageData) empty() bool {
	return d.Title == "" && d.ImageURL == "" && d.Price == ""
}

// storefrontBase is the scheme and host product pages are served from.
func storefrontBase(marketplace string) string {
	return "https://" + strings.TrimSuffix(marketplace, "/")
}

// productURL is the storefront page scraped for asin.
func productURL(base, asin string) string {
	return fmt.Sprintf("%s/dp/%s", base, asin)
}

// priceFromJSONLD returns the first offer price found in the given
// application/ld+json script bodies. Malformed blocks are skipped.
func priceFromJSONLD(blocks []string) string {
	for _, block := range blocks {
		var v any
		if err := json.Unmarshal([]byte(strings.TrimSpace(block)), &v); err != nil {
			continue
		}
		if p := findOfferPrice(v); p != "" {
			return p
		}
	}
	return ""
}

func findOfferPrice(v any) string {
	switch node := v.(type) {
	case []any:
		for _, n := range node {
			if p := findOfferPrice(n); p != "" {
				return p
			}
		}
	case map[string]any:
		for _, key := range []string{"offers", "Offers"} {
			if offers, ok := node[key]; ok {
				if p := offerPrice(offers); p != "" {
					return p
				}
			}
		}
		if t, _ := node["@type"].(string); t == "Offer" || t == "AggregateOffer" {
			if p := scalar(node["price"]); p != "" {
				return p
			}
		}
		if graph, ok := node["@graph"]; ok {
			return findOfferPrice(graph)
		}
	}
	return ""
}

func offerPrice(offers any) string {
	list, ok := offers.([]any)
	if !ok {
		list = []any{offers}
	}
	for _, o := range list {
		m, ok := o.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range []string{"price", "Price", "lowPrice"} {
			if p := scalar(m[key]); p != "" {
				return p
			}
		}
	}
	return ""
}

func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return fmt.Sprintf("%v", x)
	case json.Number:
		return x.String()
	}
	return ""
}

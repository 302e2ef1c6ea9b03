package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceFromJSONLD(t *testing.T) {
	tests := []struct {
		name   string
		blocks []string
		want   string
	}{
		{"product offers object", []string{`{"@type":"Product","offers":{"@type":"Offer","price":"29.99"}}`}, "29.99"},
		{"offers array numeric", []string{`{"@type":"Product","offers":[{"price":19.9}]}`}, "19.9"},
		{"bare offer", []string{`{"@type":"Offer","price":"5,00"}`}, "5,00"},
		{"aggregate low price", []string{`{"offers":{"@type":"AggregateOffer","lowPrice":"12.50"}}`}, "12.50"},
		{"graph", []string{`{"@graph":[{"@type":"WebPage"},{"@type":"Product","offers":{"price":"7"}}]}`}, "7"},
		{"top level array", []string{`[{"@type":"BreadcrumbList"},{"offers":{"price":"8.10"}}]`}, "8.10"},
		{"skips malformed", []string{`{not json`, `{"offers":{"price":"1.00"}}`}, "1.00"},
		{"nothing", []string{`{"@type":"Organization"}`}, ""},
		{"no blocks", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, priceFromJSONLD(tt.blocks))
		})
	}
}

func TestPageData_Empty(t *testing.T) {
	assert.True(t, pageData{}.empty())
	assert.False(t, pageData{ImageURL: "x"}.empty())
}

func TestProductURL(t *testing.T) {
	assert.Equal(t, "https://www.amazon.it/dp/B08N5WRWNW", productURL(storefrontBase("www.amazon.it"), "B08N5WRWNW"))
	assert.Equal(t, "https://www.amazon.it/dp/B08N5WRWNW", productURL(storefrontBase("www.amazon.it/"), "B08N5WRWNW"))
}

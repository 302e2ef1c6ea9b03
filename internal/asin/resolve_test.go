package asin

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealpost/internal/domain"
)

func TestResolve_BareIdentifier(t *testing.T) {
	for _, in := range []string{"B08N5WRWNW", "b08n5wrwnw", "B08n5WrWnW", "  B08N5WRWNW\n", "0123456789"} {
		got, err := Resolve(in)
		require.NoError(t, err, in)
		assert.Len(t, got, 10)
		assert.Equal(t, strings.ToUpper(strings.TrimSpace(in)), got)
	}
}

func TestResolve_URLShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"dp", "https://www.amazon.it/Test-Gadget/dp/B08N5WRWNW/ref=sr_1_1?keywords=x&qid=1"},
		{"dp lowercase", "https://www.amazon.it/dp/b08n5wrwnw?th=1"},
		{"gp product", "https://www.amazon.com/gp/product/B08N5WRWNW?psc=1&smid=A1"},
		{"asin query", "https://www.amazon.de/some/path?foo=bar&asin=B08N5WRWNW&tag=x-21"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.in)
			require.NoError(t, err)
			assert.Equal(t, "B08N5WRWNW", got)
		})
	}
}

func TestResolve_PatternPriority(t *testing.T) {
	got, err := Resolve("https://www.amazon.it/gp/product/AAAAAAAAAA/?x=/dp/BBBBBBBBBB")
	require.NoError(t, err)
	assert.Equal(t, "BBBBBBBBBB", got, "/dp/ takes precedence over /gp/product/")
}

func TestResolve_Blank(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := Resolve(in)
		var missing *domain.MissingInputError
		assert.True(t, errors.As(err, &missing), "input %q", in)
	}
}

func TestResolve_Invalid(t *testing.T) {
	for _, in := range []string{"B08N5WRWN", "B08N5WRWNW1", "https://example.com/item/123", "not an asin!"} {
		_, err := Resolve(in)
		var invalid *domain.InvalidReferenceError
		require.True(t, errors.As(err, &invalid), "input %q", in)
		assert.Equal(t, in, invalid.Input)
	}
}

func TestFromURL(t *testing.T) {
	assert.Equal(t, "B08N5WRWNW", FromURL("https://amzn.eu/dp/B08N5WRWNW"))
	assert.Empty(t, FromURL("https://example.com"))
	assert.Empty(t, FromURL(""))
}

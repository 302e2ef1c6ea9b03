package post

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealpost/internal/domain"
)

var rome = time.FixedZone("+0100", 3600)

func TestCompose_FullRecord(t *testing.T) {
	doc := Compose(Input{
		Record: domain.ProductRecord{
			ASIN:      "B08N5WRWNW",
			Title:     `Echo Dot "4th gen"`,
			ImageURL:  "https://m.media-amazon.com/images/I/x.jpg",
			Price:     &domain.Money{Amount: decimal.RequireFromString("29.9"), Currency: "EUR"},
			ListPrice: &domain.Money{Amount: decimal.RequireFromString("59.80"), Currency: "EUR"},
		},
		AffiliateURL: "https://www.amazon.it/dp/B08N5WRWNW?tag=mytag-21",
		Note:         "Minimo storico!",
		Now:          time.Date(2026, 10, 19, 9, 5, 42, 0, rome),
	})

	assert.Equal(t, "2026-10-19-0905-echo-dot-4th-gen-b08n5wrwnw.md", doc.Filename)
	want := strings.Join([]string{
		"---",
		"layout: deal",
		`title: "Echo Dot \"4th gen\""`,
		`asin: "B08N5WRWNW"`,
		`image: "https://m.media-amazon.com/images/I/x.jpg"`,
		`price_current: "29.90"`,
		`price_list: ""`,
		`discount_pct: "50"`,
		`amazon_url: "https://www.amazon.it/dp/B08N5WRWNW?tag=mytag-21"`,
		"date: 2026-10-19 09:05:00 +0100",
		"---",
		"Minimo storico!",
		"",
	}, "\n")
	assert.Equal(t, want, doc.Body)
}

func TestCompose_MinimalRecord(t *testing.T) {
	doc := Compose(Input{
		Record:       domain.ProductRecord{ASIN: "B08N5WRWNW"},
		AffiliateURL: "https://www.amazon.it/dp/B08N5WRWNW?tag=t-21",
		Layout:       "offer",
		Now:          time.Date(2026, 1, 2, 23, 59, 0, 0, rome),
	})

	assert.Equal(t, "2026-01-02-2359-b08n5wrwnw-b08n5wrwnw.md", doc.Filename)
	assert.Contains(t, doc.Body, "layout: offer\n")
	assert.Contains(t, doc.Body, `title: "B08N5WRWNW"`)
	assert.Contains(t, doc.Body, `image: ""`)
	assert.Contains(t, doc.Body, `price_current: ""`)
	assert.Contains(t, doc.Body, `discount_pct: ""`)
	assert.True(t, strings.HasSuffix(doc.Body, "date: 2026-01-02 23:59:00 +0100\n---\n"))
}

func TestWrite_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "_posts")
	doc := Document{Filename: "2026-01-01-0000-x-b08n5wrwnw.md", Body: "---\n---\n"}

	assert.False(t, Exists(dir, doc))
	path, err := Write(dir, doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, doc.Filename), path)
	assert.True(t, Exists(dir, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Body, string(data))
}

func TestWrite_Failure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Write(filepath.Join(blocker, "_posts"), Document{Filename: "a.md"})
	var writeErr *domain.FileWriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Contains(t, writeErr.Path, "a.md")
}

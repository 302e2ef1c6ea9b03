package post

import (
	"strconv"
	"strings"
	"time"

	"dealpost/internal/domain"
)

// DefaultLayout is the Jekyll layout deal posts render with.
const DefaultLayout = "deal"

// Input is everything a post is derived from.
type Input struct {
	Record       domain.ProductRecord
	AffiliateURL string
	Note         string
	// Layout defaults to DefaultLayout.
	Layout string
	// Now is the composition time, already in the zone the blog publishes in.
	Now time.Time
}

// Document is a composed post: its file name and full contents.
type Document struct {
	Filename string
	Body     string
}

// Compose renders the front matter and note for a deal post. It is deterministic
// for a given Input.
func Compose(in Input) Document {
	rec := in.Record
	layout := in.Layout
	if layout == "" {
		layout = DefaultLayout
	}
	title := rec.DisplayTitle()

	var price string
	if rec.Price != nil {
		price = FormatAmount(rec.Price.Amount.String())
	}
	var discount string
	if pct, ok := rec.Discount(); ok {
		discount = strconv.Itoa(pct)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("layout: " + layout + "\n")
	b.WriteString("title: " + quote(title) + "\n")
	b.WriteString("asin: " + quote(rec.ASIN) + "\n")
	b.WriteString("image: " + quote(rec.ImageURL) + "\n")
	b.WriteString("price_current: " + quote(price) + "\n")
	// price_list is kept empty in the front matter; the layout does not render it yet.
	b.WriteString("price_list: \"\"\n")
	b.WriteString("discount_pct: " + quote(discount) + "\n")
	b.WriteString("amazon_url: " + quote(in.AffiliateURL) + "\n")
	b.WriteString("date: " + in.Now.Format("2006-01-02 15:04:00 -0700") + "\n")
	b.WriteString("---\n")

	if note := strings.TrimSpace(in.Note); note != "" {
		b.WriteString(note + "\n")
	}

	return Document{
		Filename: Filename(title, rec.ASIN, in.Now),
		Body:     b.String(),
	}
}

// Filename returns <yyyy>-<mm>-<dd>-<hhmm>-<slug>-<asin>.md.
func Filename(title, asin string, now time.Time) string {
	return now.Format("2006-01-02-1504") + "-" + Slugify(title) + "-" + strings.ToLower(asin) + ".md"
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", " ", "\n", " ", "\r", " ")

func quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

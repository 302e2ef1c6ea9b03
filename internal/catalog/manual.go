package catalog

import (
	"context"
	"strconv"
	"strings"

	"dealpost/internal/domain"
	"dealpost/internal/post"
)

// Manual serves a product record typed in by hand instead of asking the catalog.
type Manual struct {
	Title       string
	URL         string
	ImageURL    string
	Price       string
	Currency    string
	DiscountPct string
}

// Lookup returns the hand-written record for asin. It never fails.
func (m Manual) Lookup(_ context.Context, asin string) (domain.ProductRecord, error) {
	rec := domain.ProductRecord{
		ASIN:          asin,
		Title:         strings.TrimSpace(m.Title),
		DetailPageURL: strings.TrimSpace(m.URL),
		ImageURL:      strings.TrimSpace(m.ImageURL),
	}
	if amount, ok := post.ParseAmount(m.Price); ok {
		currency := strings.ToUpper(strings.TrimSpace(m.Currency))
		if currency == "" {
			currency = "EUR"
		}
		rec.Price = &domain.Money{Amount: amount, Currency: currency}
	}
	if pct, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m.DiscountPct), "%"))); err == nil && pct > 0 {
		rec.DiscountPct = &pct
	}
	return rec, nil
}

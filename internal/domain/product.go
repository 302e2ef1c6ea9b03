package domain

import "github.com/shopspring/decimal"

// Money is a decimal amount in a given ISO 4217 currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ProductRecord is what a catalog lookup knows about a single product.
// Only ASIN is guaranteed; nil or empty fields mean the catalog did not provide them.
type ProductRecord struct {
	ASIN          string `json:"asin"`
	Title         string `json:"title,omitempty"`
	DetailPageURL string `json:"detail_page_url,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	Price         *Money `json:"price,omitempty"`
	// ListPrice is the reference price the discount is computed against.
	ListPrice *Money `json:"list_price,omitempty"`
	// DiscountPct overrides the computed discount when the source states one.
	DiscountPct *int `json:"discount_pct,omitempty"`
}

// DisplayTitle returns the title, falling back to the ASIN.
func (p ProductRecord) DisplayTitle() string {
	if p.Title == "" {
		return p.ASIN
	}
	return p.Title
}

// Discount returns the discount percentage, if one is known or can be derived
// from the current and list prices.
func (p ProductRecord) Discount() (int, bool) {
	if p.DiscountPct != nil {
		return *p.DiscountPct, true
	}
	if p.Price == nil || p.ListPrice == nil || !p.ListPrice.Amount.IsPositive() {
		return 0, false
	}
	pct := p.ListPrice.Amount.Sub(p.Price.Amount).
		Div(p.ListPrice.Amount).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	if !pct.IsPositive() {
		return 0, false
	}
	return int(pct.IntPart()), true
}

package domain

import "time"

// Deal is a ledger entry recording a published deal post.
type Deal struct {
	// ASIN is the marketplace product identifier the post was created for.
	ASIN string `json:"asin"`

	// Title as it appears in the post front matter (unescaped).
	Title string `json:"title"`

	// PostPath is the path of the written post file.
	PostPath string `json:"post_path"`

	// AffiliateURL is the tagged product link published in the post.
	AffiliateURL string `json:"affiliate_url"`

	// PriceCurrent is the formatted price at publication time, empty when unknown.
	PriceCurrent string `json:"price_current,omitempty"`

	// Announced reports whether the Telegram announcement went out.
	Announced bool `json:"announced"`

	// CreatedAt is when the post was composed.
	CreatedAt time.Time `json:"created_at"`
}

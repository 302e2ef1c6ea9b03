package bot

import (
	"strconv"
	"strings"

	"dealpost/internal/domain"
	"dealpost/internal/post"
)

// MaxCaptionLen keeps photo captions under Telegram's 1024 character cap.
const MaxCaptionLen = 1000

// Message is a deal announcement ready to send.
type Message struct {
	Text     string
	ImageURL string
}

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
}

// FormatAnnouncement lays out the announcement text for a product.
func FormatAnnouncement(rec domain.ProductRecord, affiliateURL, note string) Message {
	var b strings.Builder
	b.WriteString("🔥 " + rec.DisplayTitle() + "\n")
	if rec.Price != nil {
		b.WriteString("💶 " + post.FormatAmount(rec.Price.Amount.String()) + currencySymbol(rec.Price.Currency))
		if pct, ok := rec.Discount(); ok {
			b.WriteString(" (-" + strconv.Itoa(pct) + "%)")
		}
		b.WriteString("\n")
	}
	if affiliateURL != "" {
		b.WriteString(affiliateURL)
	}
	if note = strings.TrimSpace(note); note != "" {
		b.WriteString("\n\n📝 " + note)
	}
	return Message{Text: b.String(), ImageURL: rec.ImageURL}
}

// Caption returns the text cut to MaxCaptionLen characters.
func (m Message) Caption() string {
	r := []rune(m.Text)
	if len(r) <= MaxCaptionLen {
		return m.Text
	}
	return string(r[:MaxCaptionLen])
}

func currencySymbol(code string) string {
	code = strings.ToUpper(code)
	if code == "" {
		return "€"
	}
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return " " + code
}

package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"dealpost/internal/domain"
)

func TestFormatAnnouncement(t *testing.T) {
	rec := domain.ProductRecord{
		ASIN:      "B08N5WRWNW",
		Title:     "Test Gadget",
		ImageURL:  "https://img/x.jpg",
		Price:     &domain.Money{Amount: decimal.RequireFromString("29.9"), Currency: "EUR"},
		ListPrice: &domain.Money{Amount: decimal.RequireFromString("39.90"), Currency: "EUR"},
	}

	msg := FormatAnnouncement(rec, "https://www.amazon.it/dp/B08N5WRWNW?tag=mytag-21", "Ottimo prezzo")

	assert.Equal(t, "🔥 Test Gadget\n💶 29.90€ (-25%)\nhttps://www.amazon.it/dp/B08N5WRWNW?tag=mytag-21\n\n📝 Ottimo prezzo", msg.Text)
	assert.Equal(t, "https://img/x.jpg", msg.ImageURL)
}

func TestFormatAnnouncement_Sparse(t *testing.T) {
	msg := FormatAnnouncement(domain.ProductRecord{ASIN: "B08N5WRWNW"}, "", "")
	assert.Equal(t, "🔥 B08N5WRWNW\n", msg.Text)
	assert.Empty(t, msg.ImageURL)
}

func TestFormatAnnouncement_Currency(t *testing.T) {
	rec := domain.ProductRecord{ASIN: "B08N5WRWNW", Price: &domain.Money{Amount: decimal.NewFromInt(10), Currency: "SEK"}}
	assert.Contains(t, FormatAnnouncement(rec, "", "").Text, "💶 10.00 SEK\n")

	rec.Price.Currency = "usd"
	assert.Contains(t, FormatAnnouncement(rec, "", "").Text, "💶 10.00$\n")
}

func TestMessage_Caption(t *testing.T) {
	short := Message{Text: "hello"}
	assert.Equal(t, "hello", short.Caption())

	long := Message{Text: strings.Repeat("è", 1500)}
	assert.Equal(t, MaxCaptionLen, utf8.RuneCountInString(long.Caption()))
	assert.True(t, utf8.ValidString(long.Caption()))
}

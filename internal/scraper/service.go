// Package scraper reads product data from the storefront page with a headless browser.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"dealpost/internal/domain"
	"dealpost/internal/post"
)

// RodScraper looks products up by rendering their storefront page.
type RodScraper struct {
	log      logrus.FieldLogger
	baseURL  string
	currency string
	timeout  time.Duration
}

// NewRodScraper creates a page scraper for the given marketplace host.
func NewRodScraper(marketplace, currency string, timeout time.Duration, logger logrus.FieldLogger) *RodScraper {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if currency == "" {
		currency = "EUR"
	}
	return &RodScraper{
		log:      logger.WithField("component", "scraper"),
		baseURL:  storefrontBase(marketplace),
		currency: currency,
		timeout:  timeout,
	}
}

// Lookup renders the product page for asin and extracts title, image and price.
func (s *RodScraper) Lookup(ctx context.Context, asin string) (domain.ProductRecord, error) {
	url := productURL(s.baseURL, asin)
	data, err := s.scrape(ctx, url)
	if err != nil {
		return domain.ProductRecord{}, &domain.LookupTransportError{Err: err}
	}
	if data.empty() {
		return domain.ProductRecord{}, &domain.ProductNotFoundError{ASIN: asin, Reason: "page has no product metadata"}
	}

	rec := domain.ProductRecord{
		ASIN:          asin,
		Title:         data.Title,
		DetailPageURL: url,
		ImageURL:      data.ImageURL,
	}
	if amount, ok := post.ParseAmount(data.Price); ok {
		rec.Price = &domain.Money{Amount: amount, Currency: s.currency}
	}
	return rec, nil
}

func (s *RodScraper) scrape(ctx context.Context, url string) (data pageData, err error) {
	log := s.log.WithField("url", url)
	log.Info("Attempting to scrape product page")

	path, exists := launcher.LookPath()
	if !exists {
		return pageData{}, errors.New("rod browser dependency not found")
	}
	controlURL, err := launcher.New().Bin(path).Launch()
	if err != nil {
		return pageData{}, fmt.Errorf("failed to launch browser: %w", err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err = browser.Connect(); err != nil {
		return pageData{}, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			log.WithError(closeErr).Error("Error closing rod browser instance")
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return pageData{}, fmt.Errorf("failed to create page: %w", err)
	}

	pageCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	page = page.Context(pageCtx)

	if err = page.WaitLoad(); err != nil {
		if errors.Is(pageCtx.Err(), context.DeadlineExceeded) {
			return pageData{}, fmt.Errorf("scraping timed out for %s: %w", url, pageCtx.Err())
		}
		return pageData{}, fmt.Errorf("failed waiting for page load: %w", err)
	}

	data.Title = firstMeta(page, `meta[property="og:title"]`, `meta[name="twitter:title"]`)
	if data.Title == "" {
		if ok, el, _ := page.Has("title"); ok {
			if text, textErr := el.Text(); textErr == nil {
				data.Title = strings.TrimSpace(text)
			}
		}
	}
	data.ImageURL = firstMeta(page, `meta[property="og:image"]`, `meta[name="twitter:image"]`)

	var blocks []string
	if scripts, scriptErr := page.Elements(`script[type="application/ld+json"]`); scriptErr == nil {
		for _, el := range scripts {
			if text, textErr := el.Text(); textErr == nil {
				blocks = append(blocks, text)
			}
		}
	}
	data.Price = priceFromJSONLD(blocks)
	if data.Price == "" {
		data.Price = firstMeta(page, `meta[property="product:price:amount"]`)
	}

	log.WithFields(logrus.Fields{
		"title":     data.Title,
		"has_image": data.ImageURL != "",
		"price":     data.Price,
	}).Info("Product page scraped")
	return data, nil
}

// firstMeta returns the first non-empty content attribute among selectors.
func firstMeta(page *rod.Page, selectors ...string) string {
	for _, selector := range selectors {
		ok, el, err := page.Has(selector)
		if err != nil || !ok {
			continue
		}
		content, err := el.Attribute("content")
		if err != nil || content == nil {
			continue
		}
		if v := strings.TrimSpace(*content); v != "" {
			return v
		}
	}
	return ""
}

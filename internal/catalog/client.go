package catalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"dealpost/internal/domain"
)

const (
	signingService = "ProductAdvertisingAPI"
	getItemsTarget = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.GetItems"
	getItemsPath   = "/paapi5/getitems"
)

// Resources requested for every item.
var Resources = []string{
	"ItemInfo.Title",
	"Images.Primary.Large",
	"Offers.Listings.Price",
	"Offers.Listings.SavingBasis",
}

// Credentials identify the associate account against the catalog API.
// ID and Secret sign the request; Version only labels it.
type Credentials struct {
	ID      string
	Secret  string
	Version string
}

// Options configure a Client.
type Options struct {
	Credentials Credentials
	PartnerTag  string
	// Marketplace is the storefront host, e.g. www.amazon.it.
	Marketplace string
	// Host is the API host, e.g. webservices.amazon.it.
	Host   string
	Region string
	// Endpoint overrides https://<Host>/paapi5/getitems.
	Endpoint   string
	HTTPClient *http.Client
}

// Client calls the Product Advertising API GetItems operation.
type Client struct {
	opts     Options
	endpoint string
	signer   *v4.Signer
	http     *http.Client
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewClient creates a catalog client.
func NewClient(opts Options, logger logrus.FieldLogger) *Client {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = "https://" + opts.Host + getItemsPath
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	log := logger.WithField("component", "catalog")
	log.WithFields(logrus.Fields{
		"credential_version": opts.Credentials.Version,
		"endpoint":           endpoint,
	}).Debug("Catalog client configured")

	return &Client{
		opts:     opts,
		endpoint: endpoint,
		signer:   v4.NewSigner(),
		http:     httpClient,
		log:      log,
		now:      time.Now,
	}
}

type getItemsRequest struct {
	ItemIDs     []string `json:"ItemIds"`
	ItemIDType  string   `json:"ItemIdType"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

type getItemsResponse struct {
	ItemsResult *struct {
		Items []item `json:"Items"`
	} `json:"ItemsResult"`
	Errors []apiError `json:"Errors"`
}

type apiError struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

type item struct {
	ASIN          string `json:"ASIN"`
	DetailPageURL string `json:"DetailPageURL"`
	ItemInfo      *struct {
		Title *struct {
			DisplayValue string `json:"DisplayValue"`
		} `json:"Title"`
	} `json:"ItemInfo"`
	Images *struct {
		Primary *struct {
			Large *struct {
				URL string `json:"URL"`
			} `json:"Large"`
		} `json:"Primary"`
	} `json:"Images"`
	Offers *struct {
		Listings []struct {
			Price       *price `json:"Price"`
			SavingBasis *price `json:"SavingBasis"`
		} `json:"Listings"`
	} `json:"Offers"`
}

type price struct {
	Amount   *json.Number `json:"Amount"`
	Currency string       `json:"Currency"`
}

// Lookup fetches one item by ASIN.
func (c *Client) Lookup(ctx context.Context, asin string) (domain.ProductRecord, error) {
	log := c.log.WithField("asin", asin)
	log.Info("Looking up product")

	body, err := json.Marshal(getItemsRequest{
		ItemIDs:     []string{asin},
		ItemIDType:  "ASIN",
		PartnerTag:  c.opts.PartnerTag,
		PartnerType: "Associates",
		Marketplace: c.opts.Marketplace,
		Resources:   Resources,
	})
	if err != nil {
		return domain.ProductRecord{}, &domain.LookupTransportError{Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.ProductRecord{}, &domain.LookupTransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("X-Amz-Target", getItemsTarget)
	req.Header.Set("User-Agent", "dealpost (credential-version "+c.opts.Credentials.Version+")")

	sum := sha256.Sum256(body)
	creds := aws.Credentials{
		AccessKeyID:     c.opts.Credentials.ID,
		SecretAccessKey: c.opts.Credentials.Secret,
	}
	if err := c.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(sum[:]), signingService, c.opts.Region, c.now()); err != nil {
		return domain.ProductRecord{}, &domain.LookupTransportError{Err: fmt.Errorf("sign request: %w", err)}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.ProductRecord{}, &domain.LookupTransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ProductRecord{}, &domain.LookupTransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	var out getItemsResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && len(out.Errors) > 0 {
			if out.Errors[0].Code == "ItemNotAccessible" {
				return domain.ProductRecord{}, &domain.ProductNotFoundError{ASIN: asin, Reason: out.Errors[0].Message}
			}
			return domain.ProductRecord{}, &domain.LookupTransportError{
				Err: fmt.Errorf("HTTP %d: %s: %s", resp.StatusCode, out.Errors[0].Code, out.Errors[0].Message),
			}
		}
		return domain.ProductRecord{}, &domain.LookupTransportError{Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}
	if decodeErr != nil {
		return domain.ProductRecord{}, &domain.LookupTransportError{Err: fmt.Errorf("decode response: %w", decodeErr)}
	}

	if out.ItemsResult == nil || len(out.ItemsResult.Items) == 0 {
		var reason string
		if len(out.Errors) > 0 {
			reason = out.Errors[0].Message
		}
		log.Warn("Catalog returned no items")
		return domain.ProductRecord{}, &domain.ProductNotFoundError{ASIN: asin, Reason: reason}
	}

	rec := toRecord(asin, out.ItemsResult.Items[0])
	log.WithFields(logrus.Fields{
		"title":     rec.Title,
		"has_image": rec.ImageURL != "",
		"has_price": rec.Price != nil,
	}).Info("Product found")
	return rec, nil
}

func toRecord(asin string, it item) domain.ProductRecord {
	rec := domain.ProductRecord{ASIN: asin, DetailPageURL: it.DetailPageURL}
	if it.ItemInfo != nil && it.ItemInfo.Title != nil {
		rec.Title = it.ItemInfo.Title.DisplayValue
	}
	if it.Images != nil && it.Images.Primary != nil && it.Images.Primary.Large != nil {
		rec.ImageURL = it.Images.Primary.Large.URL
	}
	if it.Offers != nil && len(it.Offers.Listings) > 0 {
		listing := it.Offers.Listings[0]
		rec.Price = listing.Price.money()
		rec.ListPrice = listing.SavingBasis.money()
	}
	return rec
}

func (p *price) money() *domain.Money {
	if p == nil || p.Amount == nil {
		return nil
	}
	amount, err := decimal.NewFromString(p.Amount.String())
	if err != nil {
		return nil
	}
	return &domain.Money{Amount: amount, Currency: p.Currency}
}

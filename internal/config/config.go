package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"dealpost/internal/domain"
)

// Deal sources.
const (
	SourceCatalog = "catalog"
	SourceManual  = "manual"
	SourcePage    = "page"
)

// Config holds all configuration for a run.
// Values are read by viper from an optional config file and the environment.
type Config struct {
	// Reference is the ASIN or product URL to post.
	Reference string `mapstructure:"ASIN"`
	Note      string `mapstructure:"NOTE"`

	AssociateTag string `mapstructure:"AMAZON_ASSOCIATE_TAG"`

	CredentialID     string `mapstructure:"CREATORS_CREDENTIAL_ID"`
	CredentialSecret string `mapstructure:"CREATORS_CREDENTIAL_SECRET"`
	// CredentialVersion is informational on the PA-API 5 path: it is logged and
	// sent in the User-Agent, the request signature does not depend on it.
	CredentialVersion string `mapstructure:"CREATORS_CREDENTIAL_VERSION"`

	TelegramBotToken  string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramChannelID string `mapstructure:"TELEGRAM_CHANNEL_ID"`

	PostsDir      string `mapstructure:"POSTS_DIR"`
	PostLayout    string `mapstructure:"POST_LAYOUT"`
	PostUTCOffset string `mapstructure:"POST_UTC_OFFSET"`

	Marketplace     string `mapstructure:"MARKETPLACE"`
	CatalogHost     string `mapstructure:"CATALOG_HOST"`
	CatalogRegion   string `mapstructure:"CATALOG_REGION"`
	CatalogEndpoint string `mapstructure:"CATALOG_ENDPOINT"`

	Source      string        `mapstructure:"DEAL_SOURCE"`
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
	DealsDBPath string        `mapstructure:"DEALS_DB_PATH"`

	// Hand-entered product data for the manual source.
	ManualTitle    string `mapstructure:"TITLE"`
	ManualURL      string `mapstructure:"URL"`
	ManualImageURL string `mapstructure:"IMAGE_URL"`
	ManualPrice    string `mapstructure:"PRICE"`
	Currency       string `mapstructure:"CURRENCY"`
	ManualDiscount string `mapstructure:"DISCOUNT_PCT"`
}

var defaults = map[string]any{
	"CREATORS_CREDENTIAL_VERSION": "2.2",
	"POSTS_DIR":                   "_posts",
	"POST_LAYOUT":                 "deal",
	"POST_UTC_OFFSET":             "+0100",
	"MARKETPLACE":                 "www.amazon.it",
	"CATALOG_HOST":                "webservices.amazon.it",
	"CATALOG_REGION":              "eu-west-1",
	"DEAL_SOURCE":                 SourceCatalog,
	"HTTP_TIMEOUT":                "30s",
	"LOG_LEVEL":                   "warn",
	"CURRENCY":                    "EUR",
}

// envAliases lists the environment variables each key is read from, in priority order.
var envAliases = map[string][]string{
	"CREATORS_CREDENTIAL_ID":     {"CREATORS_CREDENTIAL_ID", "AMAZON_ACCESS_KEY"},
	"CREATORS_CREDENTIAL_SECRET": {"CREATORS_CREDENTIAL_SECRET", "AMAZON_SECRET_KEY"},
}

var keys = []string{
	"ASIN", "NOTE", "AMAZON_ASSOCIATE_TAG",
	"CREATORS_CREDENTIAL_ID", "CREATORS_CREDENTIAL_SECRET", "CREATORS_CREDENTIAL_VERSION",
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHANNEL_ID",
	"POSTS_DIR", "POST_LAYOUT", "POST_UTC_OFFSET",
	"MARKETPLACE", "CATALOG_HOST", "CATALOG_REGION", "CATALOG_ENDPOINT",
	"DEAL_SOURCE", "HTTP_TIMEOUT", "LOG_LEVEL", "DEALS_DB_PATH",
	"TITLE", "URL", "IMAGE_URL", "PRICE", "CURRENCY", "DISCOUNT_PCT",
}

// LoadConfig reads configuration from a .env file, an optional config file and
// environment variables. path is either a directory searched for config.yaml
// or a config file.
func LoadConfig(path string) (Config, error) {
	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(path)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	for _, key := range keys {
		bind := append([]string{key}, envAliases[key]...)
		if err := v.BindEnv(bind...); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}
	cfg.trim()
	cfg.Source = strings.ToLower(cfg.Source)

	return cfg, nil
}

func (c *Config) trim() {
	for _, s := range []*string{
		&c.Reference, &c.Note, &c.AssociateTag,
		&c.CredentialID, &c.CredentialSecret, &c.CredentialVersion,
		&c.TelegramBotToken, &c.TelegramChannelID,
		&c.ManualTitle, &c.ManualURL, &c.ManualImageURL, &c.ManualPrice, &c.ManualDiscount,
	} {
		*s = strings.TrimSpace(*s)
	}
}

// Validate checks that the secrets the selected source needs are present.
func (c Config) Validate() error {
	switch c.Source {
	case SourceCatalog, SourceManual, SourcePage:
	default:
		return fmt.Errorf("unknown DEAL_SOURCE %q (want %s, %s or %s)", c.Source, SourceCatalog, SourceManual, SourcePage)
	}
	if c.AssociateTag == "" {
		return &domain.MissingCredentialError{Key: "AMAZON_ASSOCIATE_TAG"}
	}
	if c.Source == SourceCatalog {
		if c.CredentialID == "" {
			return &domain.MissingCredentialError{Key: "CREATORS_CREDENTIAL_ID"}
		}
		if c.CredentialSecret == "" {
			return &domain.MissingCredentialError{Key: "CREATORS_CREDENTIAL_SECRET"}
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// ProductReference is the reference to resolve: ASIN when set, else the manual URL.
func (c Config) ProductReference() string {
	if c.Reference != "" {
		return c.Reference
	}
	return c.ManualURL
}

// AnnouncementEnabled reports whether both Telegram settings are present.
func (c Config) AnnouncementEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChannelID != ""
}

// Location is the fixed-offset zone post dates are written in.
func (c Config) Location() (*time.Location, error) {
	t, err := time.Parse("-0700", c.PostUTCOffset)
	if err != nil {
		return nil, fmt.Errorf("invalid POST_UTC_OFFSET %q: %w", c.PostUTCOffset, err)
	}
	_, offset := t.Zone()
	return time.FixedZone(c.PostUTCOffset, offset), nil
}

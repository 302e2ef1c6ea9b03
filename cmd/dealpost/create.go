package main

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dealpost/internal/bot"
	"dealpost/internal/catalog"
	"dealpost/internal/config"
	"dealpost/internal/pipeline"
	"dealpost/internal/scraper"
)

func newCreateCommand(a *app) *cobra.Command {
	var note, source string

	cmd := &cobra.Command{
		Use:   "create [asin-or-url]",
		Short: "Look a product up, write its deal post and announce it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if len(args) == 1 {
				cfg.Reference = args[0]
			}
			if cmd.Flags().Changed("note") {
				cfg.Note = note
			}
			if source != "" {
				cfg.Source = source
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			runner, cleanup, err := newRunner(a, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := runner.Run(cmd.Context(), pipeline.Request{
				Reference: cfg.ProductReference(),
				Note:      cfg.Note,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created post: %s\n", res.Path)
			switch {
			case runner.Announcer == nil:
				fmt.Fprintln(out, "Telegram not configured; skipping.")
			case res.AnnounceErr != nil:
				fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: %v\n", res.AnnounceErr)
			default:
				fmt.Fprintln(out, "Telegram sent.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "free-text note appended to the post (overrides NOTE)")
	cmd.Flags().StringVar(&source, "source", "", "product data source: catalog, manual or page (overrides DEAL_SOURCE)")
	return cmd
}

// newRunner wires the pipeline stages from cfg. cleanup releases the ledger.
func newRunner(a *app, cfg config.Config) (*pipeline.Runner, func(), error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	runner := &pipeline.Runner{
		Lookup: newLookup(cfg, a.log),
		Settings: pipeline.Settings{
			AssociateTag: cfg.AssociateTag,
			Marketplace:  cfg.Marketplace,
			PostsDir:     cfg.PostsDir,
			Layout:       cfg.PostLayout,
			Location:     loc,
		},
		Log: a.log,
	}

	if cfg.AnnouncementEnabled() {
		announcer, err := bot.NewAnnouncer(cfg.TelegramBotToken, cfg.TelegramChannelID, a.log)
		if err != nil {
			return nil, nil, err
		}
		runner.Announcer = announcer
	}

	ledger, err := a.openLedger()
	if err != nil {
		return nil, nil, err
	}
	if ledger != nil {
		runner.Ledger = ledger
	}

	return runner, func() { a.closeLedger(ledger) }, nil
}

func newLookup(cfg config.Config, log logrus.FieldLogger) catalog.Lookup {
	switch cfg.Source {
	case config.SourceManual:
		return catalog.Manual{
			Title:       cfg.ManualTitle,
			URL:         cfg.ManualURL,
			ImageURL:    cfg.ManualImageURL,
			Price:       cfg.ManualPrice,
			Currency:    cfg.Currency,
			DiscountPct: cfg.ManualDiscount,
		}
	case config.SourcePage:
		return scraper.NewRodScraper(cfg.Marketplace, cfg.Currency, cfg.HTTPTimeout, log)
	default:
		return catalog.NewClient(catalog.Options{
			Credentials: catalog.Credentials{
				ID:      cfg.CredentialID,
				Secret:  cfg.CredentialSecret,
				Version: cfg.CredentialVersion,
			},
			PartnerTag:  cfg.AssociateTag,
			Marketplace: cfg.Marketplace,
			Host:        cfg.CatalogHost,
			Region:      cfg.CatalogRegion,
			Endpoint:    cfg.CatalogEndpoint,
			HTTPClient:  &http.Client{Timeout: cfg.HTTPTimeout},
		}, log)
	}
}

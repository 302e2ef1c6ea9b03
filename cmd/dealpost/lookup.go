package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dealpost/internal/domain"
	"dealpost/internal/pipeline"
	"dealpost/internal/post"
)

func newLookupCommand(a *app) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "lookup [asin-or-url]",
		Short: "Print product data as KEY=value lines for a CI workflow",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if len(args) == 1 {
				cfg.Reference = args[0]
			}
			if source != "" {
				cfg.Source = source
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			runner := &pipeline.Runner{Lookup: newLookup(cfg, a.log), Log: a.log}
			rec, err := runner.Fetch(cmd.Context(), cfg.ProductReference())
			if err != nil {
				return err
			}

			for _, line := range envLines(rec, time.Now()) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "product data source: catalog, manual or page (overrides DEAL_SOURCE)")
	return cmd
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// envLines renders rec in the KEY=value form GitHub workflows append to $GITHUB_ENV.
func envLines(rec domain.ProductRecord, now time.Time) []string {
	var price, currency string
	if rec.Price != nil {
		price = post.FormatAmount(rec.Price.Amount.String())
		currency = rec.Price.Currency
	}
	return []string{
		"ASIN=" + rec.ASIN,
		"TITLE=" + lineBreaks.Replace(rec.DisplayTitle()),
		"IMAGE_URL=" + rec.ImageURL,
		"DETAIL_URL=" + rec.DetailPageURL,
		"PRICE=" + price,
		"CURRENCY=" + currency,
		"PRICE_TS=" + now.UTC().Format(time.RFC3339),
	}
}

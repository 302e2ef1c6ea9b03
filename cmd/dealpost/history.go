package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"dealpost/internal/asin"
	"dealpost/internal/domain"
)

var errNoLedger = errors.New("deal ledger is disabled: set DEALS_DB_PATH")

func newHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history [asin-or-url]",
		Short: "List published deals, optionally for one product",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := a.openLedger()
			if err != nil {
				return err
			}
			if ledger == nil {
				return errNoLedger
			}
			defer a.closeLedger(ledger)

			var deals []domain.Deal
			if len(args) == 1 {
				id, err := asin.Resolve(args[0])
				if err != nil {
					return err
				}
				deals, err = ledger.GetDealsByASIN(cmd.Context(), id)
				if err != nil {
					return err
				}
			} else {
				deals, err = ledger.ListDeals(cmd.Context())
				if err != nil {
					return err
				}
			}

			if len(deals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No deals recorded.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Date", "ASIN", "Price", "Telegram", "Title", "Post"})
			for _, d := range deals {
				telegram := "no"
				if d.Announced {
					telegram = "yes"
				}
				t.AppendRow(table.Row{
					d.CreatedAt.Format("2006-01-02 15:04"),
					d.ASIN,
					d.PriceCurrent,
					telegram,
					truncate(d.Title, 40),
					d.PostPath,
				})
			}
			t.Render()
			return nil
		},
	}
}

func newForgetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <asin-or-url>",
		Short: "Remove a product's entries from the deal ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := asin.Resolve(args[0])
			if err != nil {
				return err
			}
			ledger, err := a.openLedger()
			if err != nil {
				return err
			}
			if ledger == nil {
				return errNoLedger
			}
			defer a.closeLedger(ledger)

			removed, err := ledger.DeleteDealsByASIN(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d ledger entries for %s.\n", removed, id)
			return nil
		},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dealpost/internal/config"
	"dealpost/internal/storage"
)

// app carries what every subcommand needs once the root command has run.
type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *logrus.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "dealpost",
		Short:         "Create affiliate deal posts for the blog",
		Long:          `dealpost looks an Amazon product up, writes a deal post with an affiliate link into the Jekyll posts directory and optionally announces it on Telegram.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "./configs", "config directory or file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(
		newCreateCommand(a),
		newLookupCommand(a),
		newHistoryCommand(a),
		newForgetCommand(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	log.WithFields(logrus.Fields{
		"source":    cfg.Source,
		"posts_dir": cfg.PostsDir,
		"telegram":  cfg.AnnouncementEnabled(),
		"ledger":    cfg.DealsDBPath != "",
	}).Debug("Configuration loaded")

	a.cfg = cfg
	a.log = log
	return nil
}

// openLedger opens the deal ledger when DEALS_DB_PATH is set; it returns nil otherwise.
func (a *app) openLedger() (*storage.BadgerRepository, error) {
	if a.cfg.DealsDBPath == "" {
		return nil, nil
	}
	repo, err := storage.NewBadgerRepository(a.cfg.DealsDBPath, a.log)
	if err != nil {
		return nil, fmt.Errorf("opening deal ledger: %w", err)
	}
	return repo, nil
}

func (a *app) closeLedger(repo *storage.BadgerRepository) {
	if repo == nil {
		return
	}
	if err := repo.Close(); err != nil {
		a.log.WithError(err).Error("Error closing deal ledger")
	}
}

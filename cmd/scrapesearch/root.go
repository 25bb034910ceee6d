// Package main provides the entry point for the ScrapeSearch CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LexTOliver/web-scraping/internal/config"
	"github.com/LexTOliver/web-scraping/internal/database"
	"github.com/LexTOliver/web-scraping/internal/log"
)

// NewRootCmd creates the root command for ScrapeSearch.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrapesearch",
		Short: "Crawl the web and rank pages by keyword relevance",
		Long: `ScrapeSearch crawls web pages breadth-first from a seed URL, stores them,
and ranks them by relevance to a pair of keywords. Matching is accent-
and case-insensitive, so "Programação" also finds "programacao".

Crawl results persist in a local SQLite database by default; stored
sessions can be re-analyzed later with different keywords.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .scrapesearch in current or home directory)")
	cmd.PersistentFlags().String("db-type", "",
		"Database backend: sqlite or mysql (default: sqlite)")
	cmd.PersistentFlags().String("db-path", "",
		"SQLite database directory (default: XDG data directory)")
	cmd.PersistentFlags().String("db-dsn", "",
		"MySQL data source name, e.g. user:pass@tcp(127.0.0.1:3306)/scrapesearch")

	// Add subcommands
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewSessionsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConfig creates a Config from the configuration file and the
// persistent flags. Command-specific flags are applied by the caller
// afterwards, so flags win over the file and the file wins over defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly requested config file must exist; the default search
	// locations may be silently absent.
	explicit := cfg.ConfigFilePath != ""
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path != "" {
		cf, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if err := cfg.Apply(cf); err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if dbType, err := cmd.Flags().GetString("db-type"); err == nil && dbType != "" {
		cfg.Database.Type = dbType
	}
	if dbPath, err := cmd.Flags().GetString("db-path"); err == nil && dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if dsn, err := cmd.Flags().GetString("db-dsn"); err == nil && dsn != "" {
		cfg.Database.DSN = dsn
	}

	cfg.Verbose, err = cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// setupRun prepares the shared machinery of a command run: validated
// config, logging, the document store, and a signal-aware context. The
// returned cleanup closes the store and the log output.
func setupRun(cmd *cobra.Command, cfg *config.Config) (context.Context, database.Store, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("configuration error: %w", err)
	}

	logger, logCloser, err := log.New(cfg.Logging, cfg.Verbose)
	if err != nil {
		return nil, nil, nil, err
	}
	slog.SetDefault(logger)

	store, err := database.Open(cfg.Database)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	cleanup := func() {
		cancel()
		signal.Stop(sigCh)
		_ = store.Close()
		_ = logCloser.Close()
	}

	return ctx, store, cleanup, nil
}

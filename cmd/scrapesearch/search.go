package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/LexTOliver/web-scraping/internal/analyzer"
	"github.com/LexTOliver/web-scraping/internal/config"
	"github.com/LexTOliver/web-scraping/internal/crawler"
	"github.com/LexTOliver/web-scraping/internal/database"
	"github.com/LexTOliver/web-scraping/internal/model"
	"github.com/LexTOliver/web-scraping/internal/pipeline"
	"github.com/LexTOliver/web-scraping/internal/report"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <seed-url> <keyword> <keyword>",
		Short: "Crawl from a seed URL and rank pages by keyword relevance",
		Long: `Search crawls web pages breadth-first from the seed URL, stores them in
the document store, and ranks them by relevance to the two keywords.

Matching is accent- and case-insensitive and each keyword must be a
single word. The two keywords must differ after normalization.

Examples:
  # Crawl one level deep and rank by two keywords
  scrapesearch search https://example.com python programação

  # Crawl deeper and follow links to other hosts
  scrapesearch search -d 2 --policy any-http https://example.com go sqlite

  # Output JSON for tooling
  scrapesearch search --json https://example.com python tutorial`,
		Args: cobra.ExactArgs(3),
		RunE: runSearchCmd,
	}

	addCrawlFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// addCrawlFlags registers the crawl behavior flags.
func addCrawlFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		fmt.Sprintf("Maximum crawl depth, 0-%d (0 = seed page only)", config.MaxAllowedDepth))
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to fetch")
	cmd.Flags().Duration("delay", config.DefaultCrawlDelay,
		"Politeness delay before each request")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Parallel fetches within a depth level")
	cmd.Flags().String("policy", config.PolicySameHost,
		"Link-follow policy: same-host or any-http")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header to send")
}

// addReportFlags registers the report output flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().IntP("top", "n", 0,
		"Show only the top N results (0 = all)")
}

// applyCrawlFlags copies explicitly set crawl flags into the config.
// Unset flags leave the config untouched, so flags win over the file and
// the file wins over the defaults.
func applyCrawlFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("depth") {
		if cfg.MaxDepth, err = flags.GetInt("depth"); err != nil {
			return err
		}
	}
	if flags.Changed("max-pages") {
		if cfg.MaxPages, err = flags.GetInt("max-pages"); err != nil {
			return err
		}
	}
	if flags.Changed("delay") {
		if cfg.CrawlDelay, err = flags.GetDuration("delay"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return err
		}
	}
	if flags.Changed("policy") {
		if cfg.LinkPolicy, err = flags.GetString("policy"); err != nil {
			return err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return err
		}
	}

	return nil
}

// newSpider builds a spider from the config.
func newSpider(cfg *config.Config, store database.Store) *crawler.Spider {
	client := &http.Client{Timeout: cfg.Timeout}
	return crawler.NewSpider(client, store,
		crawler.WithMaxDepth(cfg.MaxDepth),
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithDelay(cfg.CrawlDelay),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithPolicy(cfg.LinkPolicy),
	)
}

// runSearchCmd executes the search command: crawl, analyze, persist,
// report.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyCrawlFlags(cmd, cfg); err != nil {
		return err
	}
	cfg.SeedURL = args[0]
	cfg.Keywords = [2]string{args[1], args[2]}

	// Bad keywords are an input error; reject them before any page is
	// fetched or stored.
	if _, err := analyzer.New().Keywords(cfg.Keywords[0], cfg.Keywords[1]); err != nil {
		return err
	}

	ctx, store, cleanup, err := setupRun(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	p := pipeline.New(pipeline.WithContinueOnError(false))
	p.AddSteps(
		pipeline.NewCrawlStep(newSpider(cfg, store)),
		pipeline.NewAnalyzeStep(analyzer.New()),
		pipeline.NewSaveAnalysisStep(store),
	)

	run := model.NewSearchRun(cfg.SeedURL, cfg.Keywords[0], cfg.Keywords[1])

	fmt.Fprintf(cmd.OutOrStdout(), "Searching %s for %q and %q...\n",
		cfg.SeedURL, cfg.Keywords[0], cfg.Keywords[1])
	start := time.Now()

	if err := p.Execute(ctx, run); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Search completed in %s\n",
		time.Since(start).Round(time.Millisecond))

	return outputRun(cmd, run)
}

// outputRun writes the finished run in the requested format and
// destination.
func outputRun(cmd *cobra.Command, run *model.SearchRun) error {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOut && markdownOut {
		return fmt.Errorf("--json and --markdown are mutually exclusive")
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}

	output := cmd.OutOrStdout()
	if outputPath != "" {
		dir := filepath.Dir(outputPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // user-chosen report path
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case jsonOut:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case markdownOut:
		writer = report.NewMarkdownWriter(output)
	default:
		opts := []report.TextWriterOption{}
		if top > 0 {
			opts = append(opts, report.WithLimit(top))
		}
		if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
			opts = append(opts, report.WithVerbose(true))
		}
		writer = report.NewTextWriter(output, opts...)
	}

	_, err = writer.Write(run)
	return err
}

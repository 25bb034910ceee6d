package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LexTOliver/web-scraping/internal/model"
	"github.com/LexTOliver/web-scraping/internal/pipeline"
)

// crawlPreviewLimit caps the stored URL listing printed after a crawl.
const crawlPreviewLimit = 10

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <seed-url>",
		Short: "Crawl from a seed URL and store the pages without analyzing",
		Long: `Crawl fetches web pages breadth-first from the seed URL and stores them
in the document store. The printed session ID can later be analyzed with
different keyword pairs using the analyze command.

Examples:
  # Crawl one level deep
  scrapesearch crawl https://example.com

  # Crawl two levels deep, at most 50 pages
  scrapesearch crawl -d 2 -p 50 https://example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	addCrawlFlags(cmd)

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyCrawlFlags(cmd, cfg); err != nil {
		return err
	}
	cfg.SeedURL = args[0]

	ctx, store, cleanup, err := setupRun(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	p := pipeline.New()
	p.AddSteps(pipeline.NewCrawlStep(newSpider(cfg, store)))

	run := &model.SearchRun{SeedURL: cfg.SeedURL}

	fmt.Fprintf(cmd.OutOrStdout(), "Crawling %s (depth %d)...\n", cfg.SeedURL, cfg.MaxDepth)
	start := time.Now()

	if err := p.Execute(ctx, run); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Crawl completed in %s\n\n",
		time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(cmd.OutOrStdout(), "Session:       %s\n", run.SessionID)
	fmt.Fprintf(cmd.OutOrStdout(), "Pages Crawled: %d\n", run.PagesCrawled())

	for i, doc := range run.Documents {
		if i >= crawlPreviewLimit {
			fmt.Fprintf(cmd.OutOrStdout(), "  ... and %d more\n", len(run.Documents)-crawlPreviewLimit)
			break
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s\n", doc.Depth, doc.URL)
	}

	if len(run.Failures) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nWarnings (%d URLs could not be fetched):\n", len(run.Failures))
		for _, failure := range run.Failures {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", failure)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nAnalyze this session with:\n  scrapesearch analyze %s <keyword> <keyword>\n", run.SessionID)

	return nil
}

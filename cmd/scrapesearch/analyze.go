package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LexTOliver/web-scraping/internal/analyzer"
	"github.com/LexTOliver/web-scraping/internal/model"
	"github.com/LexTOliver/web-scraping/internal/pipeline"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <session-id> <keyword> <keyword>",
		Short: "Rank the pages of a stored crawl session by keyword relevance",
		Long: `Analyze scores the documents of an earlier crawl session against a new
keyword pair, without fetching anything. Session IDs are printed by the
crawl command and listed by the sessions command.

Examples:
  # Re-rank a stored session with different keywords
  scrapesearch analyze 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed go sqlite`,
		Args: cobra.ExactArgs(3),
		RunE: runAnalyzeCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Keywords = [2]string{args[1], args[2]}

	// Reject bad keywords before touching the store.
	if _, err := analyzer.New().Keywords(cfg.Keywords[0], cfg.Keywords[1]); err != nil {
		return err
	}

	ctx, store, cleanup, err := setupRun(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	p := pipeline.New()
	p.AddSteps(
		pipeline.NewLoadStep(store),
		pipeline.NewAnalyzeStep(analyzer.New()),
		pipeline.NewSaveAnalysisStep(store),
	)

	run := model.NewSearchRun("", cfg.Keywords[0], cfg.Keywords[1])
	run.SessionID = args[0]

	fmt.Fprintf(cmd.OutOrStdout(), "Analyzing session %s for %q and %q...\n",
		run.SessionID, cfg.Keywords[0], cfg.Keywords[1])
	start := time.Now()

	if err := p.Execute(ctx, run); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Analysis completed in %s\n",
		time.Since(start).Round(time.Millisecond))

	return outputRun(cmd, run)
}

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/LexTOliver/web-scraping/internal/analyzer"
	"github.com/LexTOliver/web-scraping/internal/crawler"
	"github.com/LexTOliver/web-scraping/internal/database"
	"github.com/LexTOliver/web-scraping/internal/model"
)

// ErrEmptySession is returned when a stored session contains no
// documents to analyze.
var ErrEmptySession = errors.New("session has no documents")

// CrawlStep fetches documents starting from the run's seed URL and
// records the resulting session, documents, and fetch failures.
type CrawlStep struct {
	spider *crawler.Spider
}

// NewCrawlStep creates a CrawlStep using the given spider.
func NewCrawlStep(spider *crawler.Spider) *CrawlStep {
	return &CrawlStep{spider: spider}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do runs the crawl and fills the run with its outcome.
func (s *CrawlStep) Do(ctx context.Context, run *model.SearchRun) error {
	result, err := s.spider.Crawl(ctx, run.SeedURL)
	if result != nil {
		run.SessionID = result.SessionID
		run.Documents = result.Documents
		run.Failures = result.Failures
	}
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	return nil
}

// LoadStep loads the documents of a stored session into the run, for
// re-analyzing earlier crawls without fetching anything.
type LoadStep struct {
	store database.Store
}

// NewLoadStep creates a LoadStep reading from the given store.
func NewLoadStep(store database.Store) *LoadStep {
	return &LoadStep{store: store}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load-session"
}

// Do loads the session named by run.SessionID. The seed URL is recovered
// from the depth-zero document.
func (s *LoadStep) Do(ctx context.Context, run *model.SearchRun) error {
	docs, err := s.store.GetAll(ctx, run.SessionID)
	if err != nil {
		return fmt.Errorf("failed to load session %s: %w", run.SessionID, err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptySession, run.SessionID)
	}

	run.Documents = docs
	for _, doc := range docs {
		if doc.Depth == 0 {
			run.SeedURL = doc.URL
			break
		}
	}

	return nil
}

// AnalyzeStep scores the run's documents against its keyword pair.
type AnalyzeStep struct {
	analyzer *analyzer.Analyzer
}

// NewAnalyzeStep creates an AnalyzeStep using the given analyzer.
func NewAnalyzeStep(a *analyzer.Analyzer) *AnalyzeStep {
	return &AnalyzeStep{analyzer: a}
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do validates the keyword pair, scores the documents, and records the
// ranked results in the run.
func (s *AnalyzeStep) Do(_ context.Context, run *model.SearchRun) error {
	pair, err := s.analyzer.Keywords(run.Keywords[0].Text, run.Keywords[1].Text)
	if err != nil {
		return err
	}
	run.Keywords = pair

	results, err := s.analyzer.Analyze(run.Documents, pair[0].Text, pair[1].Text)
	if err != nil {
		return err
	}
	run.Results = results

	return nil
}

// SaveAnalysisStep persists the keyword positions of the run's results.
type SaveAnalysisStep struct {
	store database.Store
}

// NewSaveAnalysisStep creates a SaveAnalysisStep writing to the given
// store.
func NewSaveAnalysisStep(store database.Store) *SaveAnalysisStep {
	return &SaveAnalysisStep{store: store}
}

// Name returns the step name.
func (s *SaveAnalysisStep) Name() string {
	return "save-analysis"
}

// Do persists the analysis. A run without results is a no-op, not an
// error: the crawl may simply have found no matching documents.
func (s *SaveAnalysisStep) Do(ctx context.Context, run *model.SearchRun) error {
	if len(run.Results) == 0 {
		return nil
	}

	if err := s.store.SaveAnalysis(ctx, run.SessionID, run.Results); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

package analyzer

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/LexTOliver/web-scraping/internal/model"
	"github.com/LexTOliver/web-scraping/internal/nlp"
)

// Keyword validation errors.
var (
	// ErrMultiWordKeyword is returned when a keyword tokenizes to more
	// than one word. Matching is per token, so a phrase can never match.
	ErrMultiWordKeyword = errors.New("keyword must be a single word")

	// ErrEqualKeywords is returned when both keywords normalize to the
	// same form. The pair-based sub-scores need two distinct terms.
	ErrEqualKeywords = errors.New("keywords are identical after normalization")
)

// Analyzer scores documents against a pair of keywords.
type Analyzer struct {
	// tokenizer normalizes document text and keywords the same way.
	tokenizer *nlp.Tokenizer

	// combiner folds sub-scores into the composite ranking value.
	combiner Combiner

	// logger records analysis progress.
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCombiner sets the sub-score combination strategy.
func WithCombiner(c Combiner) Option {
	return func(a *Analyzer) {
		a.combiner = c
	}
}

// WithLogger sets the logger used during analysis.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates an Analyzer. Without options it uses the default weighted
// sum combination.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		tokenizer: nlp.NewTokenizer(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.combiner == nil {
		// DefaultWeights always validates.
		a.combiner, _ = NewWeightedSum(nil) //nolint:errcheck // nil selects DefaultWeights
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// Keywords validates and normalizes a keyword pair. Each keyword must
// normalize to exactly one non-stop word, and the two normalized forms
// must differ.
func (a *Analyzer) Keywords(first, second string) ([2]model.Keyword, error) {
	var pair [2]model.Keyword

	for i, raw := range []string{first, second} {
		tokens := a.tokenizer.Normalize(raw)
		switch {
		case len(tokens) == 0:
			return pair, fmt.Errorf("keyword %q: %w", raw, nlp.ErrEmptyKeyword)
		case len(tokens) > 1:
			return pair, fmt.Errorf("keyword %q: %w", raw, ErrMultiWordKeyword)
		}
		pair[i] = model.Keyword{Text: raw, Normalized: tokens[0].Text}
	}

	if pair[0].Normalized == pair[1].Normalized {
		return pair, fmt.Errorf("%q and %q: %w", first, second, ErrEqualKeywords)
	}

	return pair, nil
}

// Analyze scores the documents against the keyword pair and returns them
// ranked by composite score, highest first. Documents containing neither
// keyword are excluded. Ties are broken by URL, ascending, so rankings
// are stable across runs.
func (a *Analyzer) Analyze(docs []model.Document, first, second string) ([]model.ScoredDocument, error) {
	pair, err := a.Keywords(first, second)
	if err != nil {
		return nil, err
	}

	scored := make([]model.ScoredDocument, 0, len(docs))
	for i := range docs {
		doc := a.scoreDocument(&docs[i], pair)
		if doc == nil {
			continue
		}
		scored = append(scored, *doc)
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Composite != scored[j].Composite {
			return scored[i].Composite > scored[j].Composite
		}
		return scored[i].URL < scored[j].URL
	})

	a.logger.Info("analysis finished",
		"documents", len(docs),
		"matched", len(scored),
		"keywords", []string{pair[0].Normalized, pair[1].Normalized},
	)

	return scored, nil
}

// scoreDocument computes the sub-scores of one document. It returns nil
// when the document contains neither keyword.
func (a *Analyzer) scoreDocument(doc *model.Document, pair [2]model.Keyword) *model.ScoredDocument {
	tokens := a.tokenizer.Normalize(doc.Text)

	firstPos := make([]int, 0)
	secondPos := make([]int, 0)
	for _, token := range tokens {
		switch token.Text {
		case pair[0].Normalized:
			firstPos = append(firstPos, token.Position)
		case pair[1].Normalized:
			secondPos = append(secondPos, token.Position)
		}
	}

	occurrences := len(firstPos) + len(secondPos)
	if occurrences == 0 {
		return nil
	}

	scored := &model.ScoredDocument{
		URL:      doc.URL,
		Presence: float64(occurrences) / (1 + float64(occurrences)),
		KeywordPositions: map[string][]int{
			pair[0].Normalized: firstPos,
			pair[1].Normalized: secondPos,
		},
	}

	// Position and distance are pair scores: they need both keywords.
	if len(firstPos) > 0 && len(secondPos) > 0 {
		scored.Position = 1 / (1 + float64(firstPos[0]+secondPos[0]))
		scored.Distance = 1 / (1 + float64(minDistance(firstPos, secondPos)))
	}

	scored.Composite = a.combiner.Combine(scored.Subscores())

	return scored
}

// minDistance returns the smallest absolute difference between any
// position of the first keyword and any position of the second. Both
// slices are sorted ascending, so a single merge pass suffices.
func minDistance(first, second []int) int {
	i, j := 0, 0
	best := -1

	for i < len(first) && j < len(second) {
		d := first[i] - second[j]
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
		if first[i] < second[j] {
			i++
		} else {
			j++
		}
	}

	return best
}

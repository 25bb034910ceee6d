package model

import "fmt"

// FetchFailure records a single URL that could not be fetched during a
// crawl. Failures do not abort the traversal; they are reported alongside
// the results so the caller can show a warning list.
type FetchFailure struct {
	// URL is the URL that failed.
	URL string `json:"url"`

	// Depth is the link distance at which the URL was attempted.
	Depth int `json:"depth"`

	// Reason is the human-readable failure cause.
	Reason string `json:"reason"`
}

// String returns a one-line description of the failure.
func (f FetchFailure) String() string {
	return fmt.Sprintf("%s (depth %d): %s", f.URL, f.Depth, f.Reason)
}

// SearchRun is the accumulated state of one search: the pipeline steps
// fill it in sequence and the report writers render it. A run that only
// crawls has no Results; a run that only analyzes a stored session has no
// Failures.
type SearchRun struct {
	// SeedURL is the crawl starting point.
	SeedURL string `json:"seed_url"`

	// Keywords is the keyword pair of the run. Normalized forms are
	// filled in during analysis.
	Keywords [2]Keyword `json:"keywords"`

	// SessionID identifies the crawl session in the document store.
	SessionID string `json:"session_id"`

	// Documents are the pages under analysis, in fetch order.
	Documents []Document `json:"-"`

	// Failures lists URLs that could not be fetched.
	Failures []FetchFailure `json:"failures,omitempty"`

	// Results are the scored documents, ranked best first.
	Results []ScoredDocument `json:"results"`

	// PerformedSteps names the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error is the failure that stopped the run, if any.
	Error error `json:"-"`

	// ErrorMessage mirrors Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewSearchRun creates a SearchRun for the given seed URL and keyword
// pair as typed by the user.
func NewSearchRun(seedURL, firstKeyword, secondKeyword string) *SearchRun {
	return &SearchRun{
		SeedURL: seedURL,
		Keywords: [2]Keyword{
			{Text: firstKeyword},
			{Text: secondKeyword},
		},
	}
}

// PagesCrawled returns the number of documents in the run.
func (r *SearchRun) PagesCrawled() int {
	return len(r.Documents)
}

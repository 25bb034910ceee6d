package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/LexTOliver/web-scraping/internal/model"
)

// TextWriter outputs human-readable text reports for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter

	// verbose enables per-result sub-score columns.
	verbose bool

	// limit caps the number of ranked results shown. Zero means all.
	limit int
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables sub-score columns in the ranking table.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// WithLimit caps the number of results printed.
func WithLimit(limit int) TextWriterOption {
	return func(w *TextWriter) {
		w.limit = limit
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run in human-readable format.
func (w *TextWriter) Write(run *model.SearchRun) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, run)
	w.writeResults(&sb, run)
	w.writeFailures(&sb, run)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run summary.
func (w *TextWriter) writeHeader(sb *strings.Builder, run *model.SearchRun) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        SCRAPESEARCH RESULTS\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Seed URL:      %s\n", run.SeedURL)
	fmt.Fprintf(sb, "Keywords:      %s, %s\n", keywordLabel(run.Keywords[0]), keywordLabel(run.Keywords[1]))
	if run.SessionID != "" {
		fmt.Fprintf(sb, "Session:       %s\n", run.SessionID)
	}
	fmt.Fprintf(sb, "Pages Crawled: %d\n", run.PagesCrawled())

	if run.ErrorMessage != "" {
		fmt.Fprintf(sb, "Status:        ERROR - %s\n", run.ErrorMessage)
	} else {
		sb.WriteString("Status:        Complete\n")
	}
	sb.WriteString("\n")
}

// writeResults writes the ranked results table.
func (w *TextWriter) writeResults(sb *strings.Builder, run *model.SearchRun) {
	if len(run.Results) == 0 {
		sb.WriteString("No documents matched the keywords.\n\n")
		return
	}

	results := run.Results
	if w.limit > 0 && len(results) > w.limit {
		results = results[:w.limit]
	}

	fmt.Fprintf(sb, "Ranked Results (%d of %d):\n\n", len(results), len(run.Results))
	if w.verbose {
		fmt.Fprintf(sb, "  %4s  %-8s  %-8s  %-8s  %-8s  %s\n",
			"Rank", "Score", "Presence", "Position", "Distance", "URL")
	} else {
		fmt.Fprintf(sb, "  %4s  %-8s  %s\n", "Rank", "Score", "URL")
	}

	for i, result := range results {
		if w.verbose {
			fmt.Fprintf(sb, "  %4d  %-8.4f  %-8.4f  %-8.4f  %-8.4f  %s\n",
				i+1, result.Composite, result.Presence, result.Position, result.Distance, result.URL)
		} else {
			fmt.Fprintf(sb, "  %4d  %-8.4f  %s\n", i+1, result.Composite, result.URL)
		}
	}
	sb.WriteString("\n")
}

// writeFailures writes the fetch failure warning list.
func (w *TextWriter) writeFailures(sb *strings.Builder, run *model.SearchRun) {
	if len(run.Failures) == 0 {
		return
	}

	fmt.Fprintf(sb, "Warnings (%d URLs could not be fetched):\n", len(run.Failures))
	for _, failure := range run.Failures {
		fmt.Fprintf(sb, "  - %s\n", failure)
	}
	sb.WriteString("\n")
}

// keywordLabel renders a keyword with its normalized form when the two
// differ.
func keywordLabel(k model.Keyword) string {
	if k.Normalized == "" || k.Normalized == k.Text {
		return k.Text
	}
	return fmt.Sprintf("%s (%s)", k.Text, k.Normalized)
}

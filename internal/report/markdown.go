package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/LexTOliver/web-scraping/internal/model"
)

// MarkdownWriter outputs runs in Markdown format, for documentation and
// sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run in Markdown format.
func (w *MarkdownWriter) Write(run *model.SearchRun) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeResults(md, run)
	w.writeFailures(md, run)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.SearchRun) {
	md.H1("ScrapeSearch Results")
	md.PlainText("")

	status := "✅ Complete"
	if run.ErrorMessage != "" {
		status = "❌ Error - " + run.ErrorMessage
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed URL", "`" + run.SeedURL + "`"},
			{"Keywords", keywordLabel(run.Keywords[0]) + ", " + keywordLabel(run.Keywords[1])},
			{"Session", "`" + run.SessionID + "`"},
			{"Pages Crawled", strconv.Itoa(run.PagesCrawled())},
			{"Status", status},
		},
	})
	md.PlainText("")
}

// writeResults writes the ranked results table with sub-scores.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, run *model.SearchRun) {
	md.H2("Ranked Results")
	md.PlainText("")

	if len(run.Results) == 0 {
		md.PlainText("No documents matched the keywords.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(run.Results))
	for i, result := range run.Results {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.4f", result.Composite),
			fmt.Sprintf("%.4f", result.Presence),
			fmt.Sprintf("%.4f", result.Position),
			fmt.Sprintf("%.4f", result.Distance),
			result.URL,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Score", "Presence", "Position", "Distance", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes the fetch failure warning section.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, run *model.SearchRun) {
	if len(run.Failures) == 0 {
		return
	}

	md.H2("Fetch Failures")
	md.PlainText("")

	failures := make([]string, len(run.Failures))
	for i, failure := range run.Failures {
		failures[i] = failure.String()
	}
	md.BulletList(failures...)
	md.PlainText("")
	md.Warningf("%d URL(s) could not be fetched; the ranking covers the remaining pages.", len(run.Failures))
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [ScrapeSearch](https://github.com/LexTOliver/web-scraping)*")
}

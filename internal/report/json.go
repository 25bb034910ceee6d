package report

import (
	"encoding/json"
	"io"

	"github.com/LexTOliver/web-scraping/internal/model"
)

// JSONWriter outputs runs in JSON format, for tool integration and
// programmatic processing.
//
// Design decision: We use standard encoding/json rather than a
// third-party JSON library because it is part of the standard library
// and sufficient for this output path.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output. The prefix is prepended
// to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// jsonRun wraps the run with a pages-crawled count, which is otherwise
// only derivable from the unserialized document list.
type jsonRun struct {
	*model.SearchRun

	// PagesCrawled is the number of documents in the run.
	PagesCrawled int `json:"pages_crawled"`
}

// Write outputs the run in JSON format.
func (w *JSONWriter) Write(run *model.SearchRun) (int, error) {
	wrapped := jsonRun{SearchRun: run, PagesCrawled: run.PagesCrawled()}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(wrapped, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(wrapped)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for better terminal output.
	data = append(data, '\n')

	return w.output.Write(data)
}

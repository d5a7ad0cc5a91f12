package report

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"

	"github.com/robinvdvleuten/muzzle/rewrite"
)

// JSONFormatter renders summaries as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// SummaryJSON is the JSON document for a run.
type SummaryJSON struct {
	Files     []FileJSON `json:"files"`
	Scanned   int        `json:"scanned"`
	Matched   int        `json:"matched"`
	Rewritten int        `json:"rewritten"`
	Pending   int        `json:"pending"`
	Failed    int        `json:"failed"`
	Spans     int        `json:"spans"`
	Lines     int        `json:"lines"`
	ElapsedMS int64      `json:"elapsed_ms"`
}

// FileJSON describes one file of a run.
type FileJSON struct {
	Path    string       `json:"path"`
	Status  string       `json:"status"`
	Spans   []SpanJSON   `json:"spans,omitempty"`
	Changes []ChangeJSON `json:"changes,omitempty"`
	Error   *ErrorJSON   `json:"error,omitempty"`
}

// SpanJSON is a 1-based, inclusive line range.
type SpanJSON struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// ChangeJSON is a changed line.
type ChangeJSON struct {
	Line   int    `json:"line"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Op      string `json:"op,omitempty"`
}

// Format renders the summary as indented JSON.
func (jf *JSONFormatter) Format(s *rewrite.Summary) string {
	data, _ := json.MarshalIndent(jf.ToJSON(s), "", "  ")
	return string(data)
}

// FormatErrors renders errors as a JSON array.
func (jf *JSONFormatter) FormatErrors(errs []error) string {
	out := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		out = append(out, jf.errorJSON(err))
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return string(data)
}

// ToJSON converts a summary to its JSON document.
func (jf *JSONFormatter) ToJSON(s *rewrite.Summary) SummaryJSON {
	doc := SummaryJSON{
		Files:     make([]FileJSON, 0, len(s.Files)),
		Scanned:   s.Scanned,
		Matched:   s.Matched,
		Rewritten: s.Rewritten,
		Pending:   s.Pending,
		Failed:    s.Failed,
		Spans:     s.Spans,
		Lines:     s.Lines,
		ElapsedMS: s.Elapsed.Milliseconds(),
	}

	for _, res := range s.Files {
		file := FileJSON{
			Path:   res.Path,
			Status: res.Status.String(),
		}
		for _, span := range res.Spans {
			file.Spans = append(file.Spans, SpanJSON{
				Kind:  span.Kind.String(),
				Start: span.Start + 1,
				End:   span.End,
			})
		}
		for _, c := range res.Changes {
			file.Changes = append(file.Changes, ChangeJSON(c))
		}
		if res.Err != nil {
			e := jf.errorJSON(res.Err)
			file.Error = &e
		}
		doc.Files = append(doc.Files, file)
	}

	return doc
}

func (jf *JSONFormatter) errorJSON(err error) ErrorJSON {
	out := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	var fileErr *rewrite.FileError
	if stdErrors.As(err, &fileErr) {
		out.Path = fileErr.Path
		out.Op = string(fileErr.Op)
	}

	return out
}

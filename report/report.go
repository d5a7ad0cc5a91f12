// Package report renders the outcome of a rewrite run.
//
// Rendering is kept apart from the rewrite logic so the same summary can be
// shown to a person on a terminal or consumed as JSON by other tools:
//   - TextFormatter: the classic console summary with an undo hint
//   - JSONFormatter: a structured document with per-file details
package report

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/muzzle/commenter"
	"github.com/robinvdvleuten/muzzle/rewrite"
)

// Formatter renders run summaries and errors.
type Formatter interface {
	// Format renders a complete run summary.
	Format(s *rewrite.Summary) string

	// FormatErrors renders per-file errors.
	FormatErrors(errs []error) string
}

// TextFormatter renders summaries for the console.
type TextFormatter struct {
	target   string
	undoHint string
	dryRun   bool
}

// TextFormatterOption configures a TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithTarget sets the statement name used in the summary line.
func WithTarget(target string) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.target = target
	}
}

// WithUndoHint sets the command printed to revert a run. An empty hint is
// omitted.
func WithUndoHint(hint string) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.undoHint = hint
	}
}

// WithDryRun words the summary as pending changes.
func WithDryRun() TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.dryRun = true
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{
		target:   commenter.DefaultTarget,
		undoHint: "git checkout -- lib/ test/",
	}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format renders the summary.
func (tf *TextFormatter) Format(s *rewrite.Summary) string {
	var buf strings.Builder

	if tf.dryRun {
		fmt.Fprintf(&buf, "%s would change %s in %s (%s)\n",
			tf.target,
			plural(s.Spans, "statement"),
			plural(s.Pending, "file"),
			plural(s.Lines, "line"),
		)
	} else {
		fmt.Fprintf(&buf, "✅ Processed %d files with %s statements!\n", s.Rewritten, tf.target)
		if tf.undoHint != "" {
			fmt.Fprintf(&buf, "To undo this change, run: %s\n", tf.undoHint)
		}
	}

	if s.Failed > 0 {
		fmt.Fprintf(&buf, "%s could not be processed\n", plural(s.Failed, "file"))
	}

	return buf.String()
}

// FormatErrors renders one error per line, naming the file when known.
func (tf *TextFormatter) FormatErrors(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(tf.formatError(err))
		if i < len(errs)-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

func (tf *TextFormatter) formatError(err error) string {
	var fileErr *rewrite.FileError
	if stdErrors.As(err, &fileErr) {
		return fmt.Sprintf("%s: %s failed: %v", fileErr.Path, fileErr.Op, fileErr.Err)
	}
	return err.Error()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Package commenter neutralizes calls to a console-output function in source
// text by commenting them out.
//
// The work is split in three parts that share no state across spans:
//
//   - a Detector classifies each line as a statement start or not,
//   - Extend follows a statement over continuation lines by counting
//     parentheses and paired string delimiters,
//   - a Transformer rewrites the lines of each span.
//
// Nothing here reads or writes files; callers hand in a Document and get a
// new one back.
//
// Example usage:
//
//	c := commenter.New(commenter.WithPolicy(commenter.PolicyContains))
//	res, err := c.Comment(ctx, commenter.ParseDocument(data))
//	if err == nil && res.Modified {
//		// persist res.Document.Bytes()
//	}
package commenter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/robinvdvleuten/muzzle/telemetry"
)

const (
	// DefaultTarget is the call that gets neutralized.
	DefaultTarget = "IO.puts"

	// DefaultMarker starts a line comment in the target language.
	DefaultMarker = "#"

	// DefaultPlaceholder replaces an embedded call. It must be a valid
	// expression in the target language.
	DefaultPlaceholder = ":ok"
)

// Span is a run of lines that belongs to one matched statement.
type Span struct {
	// Start is the index of the first line.
	Start int
	// End is the index one past the last line.
	End int
	// Kind is Standalone or Embedded.
	Kind Classification
	// Inline is set for an embedded call that was replaced in place by the
	// placeholder instead of being commented out.
	Inline bool
}

// Len returns the number of lines in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Result is the outcome of commenting a document.
type Result struct {
	Document Document
	Spans    []Span
	Modified bool
}

// ChangedLines returns how many lines differ from the input.
func (r *Result) ChangedLines() int {
	n := 0
	for _, s := range r.Spans {
		n += s.Len()
	}
	return n
}

// Commenter finds target statements and rewrites them.
type Commenter struct {
	// Policy selects strict-prefix or contains-anywhere detection.
	Policy Policy

	// Target is the call text to look for, without the opening parenthesis.
	Target string

	// Marker is the line comment token inserted in front of matched lines.
	Marker string

	// Placeholder replaces embedded single-line calls.
	Placeholder string

	// Delimiter opens and closes multi-line string blocks.
	// Empty disables string-block tracking.
	Delimiter string

	// Fallback handles embedded calls spanning several lines.
	Fallback Fallback

	detector    Detector
	transformer *Transformer
}

// Option is a functional option for configuring a Commenter.
type Option func(*Commenter)

// WithPolicy sets the detection policy.
func WithPolicy(p Policy) Option {
	return func(c *Commenter) {
		c.Policy = p
	}
}

// WithTarget sets the call text to neutralize.
func WithTarget(target string) Option {
	return func(c *Commenter) {
		c.Target = target
	}
}

// WithMarker sets the comment marker.
func WithMarker(marker string) Option {
	return func(c *Commenter) {
		c.Marker = marker
	}
}

// WithPlaceholder sets the replacement for embedded calls.
func WithPlaceholder(placeholder string) Option {
	return func(c *Commenter) {
		c.Placeholder = placeholder
	}
}

// WithDelimiter sets the paired string-block delimiter.
func WithDelimiter(delimiter string) Option {
	return func(c *Commenter) {
		c.Delimiter = delimiter
	}
}

// WithEmbeddedFallback sets how multi-line embedded calls are handled.
func WithEmbeddedFallback(f Fallback) Option {
	return func(c *Commenter) {
		c.Fallback = f
	}
}

// WithDetector replaces the pattern-based detector.
func WithDetector(d Detector) Option {
	return func(c *Commenter) {
		c.detector = d
	}
}

// New creates a new Commenter with the given options.
func New(opts ...Option) *Commenter {
	c := &Commenter{
		Policy:      PolicyStrict,
		Target:      DefaultTarget,
		Marker:      DefaultMarker,
		Placeholder: DefaultPlaceholder,
		Delimiter:   DefaultDelimiter,
		Fallback:    FallbackSpan,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.detector == nil {
		c.detector = NewDetector(c.Target, c.Marker, c.Policy)
	}
	c.transformer = NewTransformer(c.Target, c.Marker, c.Placeholder)

	return c
}

// Contains reports whether data mentions the target at all. Files that don't
// can be skipped without splitting them into lines.
func (c *Commenter) Contains(data []byte) bool {
	return c.Target != "" && bytes.Contains(data, []byte(c.Target))
}

// Spans returns the statements that Comment would rewrite, in document order.
func (c *Commenter) Spans(doc Document) []Span {
	var spans []Span

	for i := 0; i < len(doc); {
		kind := c.detector.Detect(doc[i])

		switch kind {
		case Standalone:
			end := Extend(doc, i, c.Delimiter)
			spans = append(spans, Span{Start: i, End: end, Kind: Standalone})
			i = end

		case Embedded:
			if _, clean := c.transformer.Neutralize(doc[i]); clean {
				spans = append(spans, Span{Start: i, End: i + 1, Kind: Embedded, Inline: true})
				i++
				continue
			}

			end := i + 1
			if c.Fallback == FallbackSpan {
				end = Extend(doc, i, c.Delimiter)
			}
			spans = append(spans, Span{Start: i, End: end, Kind: Embedded})
			i = end

		default:
			i++
		}
	}

	return spans
}

// Comment rewrites every detected statement in doc. The input is not
// modified. Lines outside spans are passed through unchanged, so the output
// always has as many lines as the input.
func (c *Commenter) Comment(ctx context.Context, doc Document) (*Result, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("commenter.comment (%d lines)", len(doc)))
	defer timer.End()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	spans := c.Spans(doc)
	out := doc.Clone()

	for _, span := range spans {
		if span.Inline {
			out[span.Start], _ = c.transformer.Neutralize(doc[span.Start])
			continue
		}

		for i := span.Start; i < span.End; i++ {
			line := doc[i]
			if i == span.Start && span.Kind == Embedded {
				line, _ = c.transformer.Neutralize(line)
			}
			out[i] = c.transformer.Comment(line)
		}
	}

	return &Result{
		Document: out,
		Spans:    spans,
		Modified: len(spans) > 0,
	}, nil
}

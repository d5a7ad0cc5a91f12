package commenter

import (
	"regexp"
	"strings"
)

// Transformer produces replacement text for matched lines. It performs no I/O.
type Transformer struct {
	Target      string
	Marker      string
	Placeholder string

	call *regexp.Regexp
}

// NewTransformer creates a transformer for the given target call.
func NewTransformer(target, marker, placeholder string) *Transformer {
	return &Transformer{
		Target:      target,
		Marker:      marker,
		Placeholder: placeholder,
		call:        regexp.MustCompile(regexp.QuoteMeta(target) + `\([^)]*\)`),
	}
}

// Comment inserts the marker and a space after the line's indentation.
// A blank line receives the bare marker.
func (t *Transformer) Comment(line string) string {
	body, terminator := splitTerminator(line)
	content := strings.TrimLeft(body, " \t")
	indent := body[:len(body)-len(content)]

	if content == "" {
		return indent + t.Marker + terminator
	}

	return indent + t.Marker + " " + content + terminator
}

// Neutralize replaces each single-line call of the target with the
// placeholder, matching up to the first closing parenthesis. The boolean
// result is false when target text is still present afterwards.
func (t *Transformer) Neutralize(line string) (string, bool) {
	replaced := t.call.ReplaceAllLiteralString(line, t.Placeholder)
	return replaced, !strings.Contains(replaced, t.Target)
}

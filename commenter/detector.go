package commenter

import (
	"regexp"
	"strings"
)

// Classification is the result of testing a single line for a statement start.
type Classification int

const (
	// NoMatch means the line does not start a statement.
	NoMatch Classification = iota
	// Standalone means the target call begins the line.
	Standalone
	// Embedded means the target call sits inside other code on the line.
	Embedded
)

func (c Classification) String() string {
	switch c {
	case Standalone:
		return "standalone"
	case Embedded:
		return "embedded"
	default:
		return "none"
	}
}

// Detector decides whether a line starts a target statement. The default
// implementation is pattern based; a tokenizer for the target language can be
// plugged in with WithDetector without touching the span logic.
type Detector interface {
	Detect(line string) Classification
}

type patternDetector struct {
	policy Policy
	target string
	marker string

	strict  *regexp.Regexp // target call at the start of the trimmed line
	leading *regexp.Regexp // target text at the start of the trimmed line
}

var _ Detector = (*patternDetector)(nil)

// NewDetector returns the pattern-based detector for target under policy.
// Lines that already begin with marker are never reported.
func NewDetector(target, marker string, policy Policy) Detector {
	quoted := regexp.QuoteMeta(target)
	return &patternDetector{
		policy:  policy,
		target:  target,
		marker:  marker,
		strict:  regexp.MustCompile(`^\s*` + quoted + `\(`),
		leading: regexp.MustCompile(`^\s*` + quoted),
	}
}

func (d *patternDetector) Detect(line string) Classification {
	if d.target == "" || d.commented(line) {
		return NoMatch
	}

	switch d.policy {
	case PolicyContains:
		if !strings.Contains(line, d.target) {
			return NoMatch
		}
		if d.leading.MatchString(line) {
			return Standalone
		}
		return Embedded
	default:
		if d.strict.MatchString(line) {
			return Standalone
		}
		return NoMatch
	}
}

func (d *patternDetector) commented(line string) bool {
	if d.marker == "" {
		return false
	}
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), d.marker)
}

package commenter

import (
	"fmt"
	"strings"
)

// Policy selects how statement starts are detected and rewritten.
type Policy int

const (
	// PolicyStrict matches only lines that begin with the target call
	// (after indentation) and comments out the whole statement.
	PolicyStrict Policy = iota
	// PolicyContains matches the target anywhere on a line. Matches at the
	// start of a line are commented out like PolicyStrict; matches inside
	// other code have the call replaced by a placeholder.
	PolicyContains
)

func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyContains:
		return "contains"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses a policy name as used in flags and configuration files.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "strict-prefix", "prefix":
		return PolicyStrict, nil
	case "contains", "contains-anywhere", "anywhere":
		return PolicyContains, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want strict or contains)", s)
	}
}

// Fallback decides what happens to an embedded call whose closing
// parenthesis is not on the same line.
type Fallback int

const (
	// FallbackSpan comments out the line and every continuation line of the
	// statement, the same way a standalone match is handled.
	FallbackSpan Fallback = iota
	// FallbackLine comments out the matching line only.
	FallbackLine
)

func (f Fallback) String() string {
	switch f {
	case FallbackSpan:
		return "span"
	case FallbackLine:
		return "line"
	default:
		return fmt.Sprintf("Fallback(%d)", int(f))
	}
}

// ParseFallback parses a fallback name.
func ParseFallback(s string) (Fallback, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "span":
		return FallbackSpan, nil
	case "line":
		return FallbackLine, nil
	default:
		return 0, fmt.Errorf("unknown fallback %q (want span or line)", s)
	}
}

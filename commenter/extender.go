package commenter

import "strings"

// DefaultDelimiter opens and closes a multi-line string block.
const DefaultDelimiter = `"""`

// ScanState is threaded through the lines of one span.
//
// Both values are driven by literal character counts on each line. Strings,
// escapes and comments are not understood, so a parenthesis inside a string
// literal still moves the balance.
type ScanState struct {
	// Balance is the count of "(" minus ")" seen so far.
	Balance int
	// InBlock is true while inside a paired-delimiter string block.
	InBlock bool

	delimiter string
}

// NewScanState returns an empty state for a span. An empty delimiter
// disables string-block tracking.
func NewScanState(delimiter string) *ScanState {
	return &ScanState{delimiter: delimiter}
}

// Feed accounts for one line.
func (s *ScanState) Feed(line string) {
	s.Balance += strings.Count(line, "(") - strings.Count(line, ")")
	if s.delimiter != "" && strings.Count(line, s.delimiter)%2 == 1 {
		s.InBlock = !s.InBlock
	}
}

// Open reports whether the statement continues on the next line.
func (s *ScanState) Open() bool {
	return s.Balance > 0 || s.InBlock
}

// Extend returns the exclusive end index of the statement starting at
// doc[start]. A statement left open at the end of the document runs to the
// last line.
func Extend(doc Document, start int, delimiter string) int {
	if start < 0 || start >= len(doc) {
		return start
	}

	state := NewScanState(delimiter)
	state.Feed(doc[start])

	end := start + 1
	for end < len(doc) && state.Open() {
		state.Feed(doc[end])
		end++
	}

	return end
}

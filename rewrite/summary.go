package rewrite

import "time"

// Summary aggregates the results of a run.
type Summary struct {
	// Files holds one entry per processed file, in walk order. Files that
	// were not reached because the run stopped early are omitted.
	Files []FileResult

	Scanned   int
	Matched   int
	Rewritten int
	Pending   int
	Failed    int

	// Spans is the number of statements neutralized (or pending).
	Spans int
	// Lines is the number of lines changed (or pending).
	Lines int

	Elapsed time.Duration
}

func newSummary(results []FileResult, elapsed time.Duration) *Summary {
	s := &Summary{Elapsed: elapsed}

	for _, res := range results {
		if res.Path == "" {
			continue
		}
		s.Files = append(s.Files, res)
		s.Scanned++

		if res.Matched() {
			s.Matched++
		}

		switch res.Status {
		case StatusRewritten:
			s.Rewritten++
		case StatusPending:
			s.Pending++
		case StatusFailed:
			s.Failed++
		}

		s.Spans += len(res.Spans)
		s.Lines += len(res.Changes)
	}

	return s
}

// Errors returns the per-file errors in walk order.
func (s *Summary) Errors() []error {
	var errs []error
	for _, res := range s.Files {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errs
}

// Changed returns the files that were rewritten or would be in a dry run.
func (s *Summary) Changed() []FileResult {
	var out []FileResult
	for _, res := range s.Files {
		if res.Status == StatusRewritten || res.Status == StatusPending {
			out = append(out, res)
		}
	}
	return out
}

// Package rewrite applies a Commenter to files on disk.
//
// Each file is read completely, transformed in memory and, only when
// something changed, written back atomically. Files are independent of each
// other, so a run can process several at once.
package rewrite

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/robinvdvleuten/muzzle/commenter"
	"github.com/robinvdvleuten/muzzle/telemetry"
	"github.com/robinvdvleuten/muzzle/walker"
)

// Status describes what happened to a single file.
type Status int

const (
	// StatusSkipped means the file does not mention the target.
	StatusSkipped Status = iota
	// StatusClean means the target is mentioned but no statement matched,
	// e.g. because every call is already commented out.
	StatusClean
	// StatusPending means statements matched but the file was not written
	// because of a dry run.
	StatusPending
	// StatusRewritten means the file was replaced on disk.
	StatusRewritten
	// StatusFailed means reading or writing failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusClean:
		return "clean"
	case StatusPending:
		return "pending"
	case StatusRewritten:
		return "rewritten"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Change is one line that differs between input and output.
type Change struct {
	// Line is 1-based.
	Line   int
	Before string
	After  string
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string
	Status  Status
	Lines   int
	Spans   []commenter.Span
	Changes []Change
	Err     error
}

// Matched reports whether the file mentions the target.
func (r FileResult) Matched() bool {
	return r.Status != StatusSkipped && r.Path != ""
}

// Rewriter processes files with a Commenter.
type Rewriter struct {
	Commenter *commenter.Commenter
	Walker    *walker.Walker

	// Jobs bounds the number of files processed at once. Values below one
	// are treated as one.
	Jobs int

	// FailFast stops the run at the first file error. Otherwise errors are
	// collected and the remaining files are still processed.
	FailFast bool

	// DryRun computes changes without writing anything.
	DryRun bool

	observer func(FileResult)
	mu       sync.Mutex
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithCommenter sets the commenter used for every file.
func WithCommenter(c *commenter.Commenter) Option {
	return func(r *Rewriter) {
		r.Commenter = c
	}
}

// WithWalker sets the file walker used by Run.
func WithWalker(w *walker.Walker) Option {
	return func(r *Rewriter) {
		r.Walker = w
	}
}

// WithJobs sets the number of files processed concurrently.
func WithJobs(n int) Option {
	return func(r *Rewriter) {
		r.Jobs = n
	}
}

// WithFailFast aborts the run on the first error.
func WithFailFast() Option {
	return func(r *Rewriter) {
		r.FailFast = true
	}
}

// WithDryRun disables writing.
func WithDryRun() Option {
	return func(r *Rewriter) {
		r.DryRun = true
	}
}

// WithObserver registers fn to be called once per processed file. Calls are
// serialized but arrive in completion order when Jobs > 1.
func WithObserver(fn func(FileResult)) Option {
	return func(r *Rewriter) {
		r.observer = fn
	}
}

// New creates a Rewriter with the given options.
func New(opts ...Option) *Rewriter {
	r := &Rewriter{
		Jobs: 1,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.Commenter == nil {
		r.Commenter = commenter.New()
	}
	if r.Walker == nil {
		r.Walker = walker.New()
	}

	return r
}

// Run walks the configured roots and processes every candidate file.
//
// The returned error is non-nil only when walking fails, the context is
// cancelled, or FailFast is set and a file fails. Per-file errors are always
// available in the summary.
func (r *Rewriter) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	files, err := r.Walker.Walk(ctx)
	if err != nil {
		return nil, err
	}

	return r.process(ctx, files, start)
}

// ProcessFiles processes an explicit list of files instead of walking.
func (r *Rewriter) ProcessFiles(ctx context.Context, files []string) (*Summary, error) {
	return r.process(ctx, files, time.Now())
}

func (r *Rewriter) process(ctx context.Context, files []string, start time.Time) (*Summary, error) {
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Jobs, 1))

	for i, path := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			res := r.ProcessFile(gctx, path)
			results[i] = res
			r.notify(res)

			if res.Err != nil && r.FailFast {
				return res.Err
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	return newSummary(results, time.Since(start)), err
}

func (r *Rewriter) notify(res FileResult) {
	if r.observer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer(res)
}

// ProcessFile reads, transforms and, when needed, rewrites a single file.
// Errors are reported in the result.
func (r *Rewriter) ProcessFile(ctx context.Context, path string) FileResult {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("rewrite.file %s", path))
	defer timer.End()
	ctx = telemetry.WithRootTimer(ctx, timer)

	res := FileResult{Path: path}

	fail := func(op Op, err error) FileResult {
		res.Status = StatusFailed
		res.Err = &FileError{Path: path, Op: op, Err: err}
		return res
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail(OpRead, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(OpRead, err)
	}

	if !r.Commenter.Contains(data) {
		res.Status = StatusSkipped
		return res
	}

	doc := commenter.ParseDocument(data)
	res.Lines = len(doc)

	out, err := r.Commenter.Comment(ctx, doc)
	if err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	if !out.Modified {
		res.Status = StatusClean
		return res
	}

	res.Spans = out.Spans
	res.Changes = changes(doc, out.Document)

	if r.DryRun {
		res.Status = StatusPending
		return res
	}

	if err := writeFileAtomic(path, out.Document.Bytes(), info.Mode().Perm(), xxhash.Sum64(data)); err != nil {
		return fail(OpWrite, err)
	}

	res.Status = StatusRewritten
	return res
}

func changes(before, after commenter.Document) []Change {
	var out []Change
	for i := range before {
		if before[i] == after[i] {
			continue
		}
		out = append(out, Change{
			Line:   i + 1,
			Before: before.Text(i),
			After:  after.Text(i),
		})
	}
	return out
}

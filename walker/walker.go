// Package walker enumerates the source files muzzle should look at.
//
// A Walker is configured with a set of root directories, the file extensions
// to pick up and optional exclude globs. Roots that don't exist are skipped,
// so the default roots (lib and test) can be used in projects that only have
// one of them.
//
// Example usage:
//
//	w := walker.New(walker.WithRoots("lib"), walker.WithExtensions(".ex"))
//	files, err := w.Walk(ctx)
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/muzzle/telemetry"
)

var (
	// DefaultRoots are the library and test source directories of a Mix project.
	DefaultRoots = []string{"lib", "test"}

	// DefaultExtensions are Elixir source and script files.
	DefaultExtensions = []string{".ex", ".exs"}

	// DefaultSkipDirs are never descended into.
	DefaultSkipDirs = []string{".git", "_build", "deps", "node_modules"}
)

// Walker finds candidate files below a set of roots.
type Walker struct {
	// Roots are the directories (or single files) to scan, in order.
	Roots []string

	// Extensions are file name suffixes to include, e.g. ".ex".
	Extensions []string

	// Excludes are doublestar globs matched against the slash-separated
	// path relative to the root being walked.
	Excludes []string

	// SkipDirs are directory names that are never entered.
	SkipDirs []string
}

// Option configures a Walker.
type Option func(*Walker)

// WithRoots sets the directories to scan.
func WithRoots(roots ...string) Option {
	return func(w *Walker) {
		w.Roots = roots
	}
}

// WithExtensions sets the file suffixes to include.
func WithExtensions(exts ...string) Option {
	return func(w *Walker) {
		w.Extensions = exts
	}
}

// WithExcludes sets glob patterns for paths to leave alone.
func WithExcludes(patterns ...string) Option {
	return func(w *Walker) {
		w.Excludes = patterns
	}
}

// WithSkipDirs sets directory names that are never entered.
func WithSkipDirs(names ...string) Option {
	return func(w *Walker) {
		w.SkipDirs = names
	}
}

// New creates a Walker with the given options.
func New(opts ...Option) *Walker {
	w := &Walker{
		Roots:      slices.Clone(DefaultRoots),
		Extensions: slices.Clone(DefaultExtensions),
		SkipDirs:   slices.Clone(DefaultSkipDirs),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Validate checks the exclude patterns.
func (w *Walker) Validate() error {
	for _, pattern := range w.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// Walk returns every candidate file below the roots. Files are listed root
// by root in lexical order; a file reachable from two roots is listed once.
func (w *Walker) Walk(ctx context.Context) ([]string, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("walker.walk (%s)", strings.Join(w.Roots, ", ")))
	defer timer.End()

	if err := w.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string

	for _, root := range w.Roots {
		info, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat root %s: %w", root, err)
		}

		if !info.IsDir() {
			if w.hasExtension(root) && !seen[root] {
				seen[root] = true
				files = append(files, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if d.IsDir() {
				if path != root && (slices.Contains(w.SkipDirs, d.Name()) || w.excluded(root, path)) {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() || !w.hasExtension(path) || w.excluded(root, path) {
				return nil
			}

			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	return files, nil
}

// Matches reports whether path would be returned by Walk. It is used to
// filter file system events without walking the tree again.
func (w *Walker) Matches(path string) bool {
	if !w.hasExtension(path) {
		return false
	}

	clean := filepath.Clean(path)
	for _, root := range w.Roots {
		root = filepath.Clean(root)
		if clean == root {
			return true
		}

		rel, err := filepath.Rel(root, clean)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}

		for _, part := range strings.Split(filepath.Dir(rel), string(filepath.Separator)) {
			if slices.Contains(w.SkipDirs, part) {
				return false
			}
		}
		return !w.excluded(root, clean)
	}

	return false
}

func (w *Walker) hasExtension(path string) bool {
	name := filepath.Base(path)
	return slices.ContainsFunc(w.Extensions, func(ext string) bool {
		return ext != "" && strings.HasSuffix(name, ext)
	})
}

func (w *Walker) excluded(root, path string) bool {
	if len(w.Excludes) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range w.Excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

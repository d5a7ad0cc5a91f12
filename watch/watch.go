// Package watch reprocesses source files as they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/muzzle/rewrite"
	"github.com/robinvdvleuten/muzzle/walker"
)

// DefaultDelay is how long the watcher waits for a burst of events to settle.
// Editors often write a file in several steps.
const DefaultDelay = 100 * time.Millisecond

// Watcher feeds changed files under the walker's roots to a Rewriter.
type Watcher struct {
	Rewriter *rewrite.Rewriter
	Walker   *walker.Walker
	Delay    time.Duration

	// OnBatch is called after each batch of changed files was processed.
	OnBatch func(*rewrite.Summary, error)

	mu      sync.Mutex
	pending map[string]struct{}
	flushMu sync.Mutex
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		w.Delay = d
	}
}

// WithOnBatch registers a callback for processed batches.
func WithOnBatch(fn func(*rewrite.Summary, error)) Option {
	return func(w *Watcher) {
		w.OnBatch = fn
	}
}

// New creates a Watcher that uses the rewriter's walker for its roots.
func New(rw *rewrite.Rewriter, opts ...Option) *Watcher {
	w := &Watcher{
		Rewriter: rw,
		Walker:   rw.Walker,
		Delay:    DefaultDelay,
		pending:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. Only roots that exist when Run starts
// are watched; directories created below them are picked up on the fly.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	watched := 0
	for _, root := range w.Walker.Roots {
		info, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to stat root %s: %w", root, err)
		}
		if !info.IsDir() {
			root = filepath.Dir(root)
		}
		if err := w.addTree(fw, root); err != nil {
			return err
		}
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("none of the roots exist: %v", w.Walker.Roots)
	}

	return w.loop(ctx, fw)
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && slices.Contains(w.Walker.SkipDirs, d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			log.Printf("Warning: failed to watch %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) error {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, event.Name); err != nil {
						log.Printf("Warning: failed to watch %s: %v", event.Name, err)
					}
					continue
				}
			}

			if !w.Walker.Matches(event.Name) {
				continue
			}

			w.mu.Lock()
			w.pending[event.Name] = struct{}{}
			w.mu.Unlock()

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.Delay, func() {
				w.flush(ctx)
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// flush processes every pending file that still exists.
func (w *Watcher) flush(ctx context.Context) {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	w.mu.Lock()
	files := make([]string, 0, len(w.pending))
	for path := range w.pending {
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(files) == 0 || ctx.Err() != nil {
		return
	}
	slices.Sort(files)

	summary, err := w.Rewriter.ProcessFiles(ctx, files)
	if w.OnBatch != nil {
		w.OnBatch(summary, err)
	}
}

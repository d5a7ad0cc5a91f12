package rewrite

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// writeFileAtomic replaces path with data via a temporary file in the same
// directory and a rename. Before the rename the current contents are hashed
// and compared against expected, the hash of what was originally read.
func writeFileAtomic(path string, data []byte, perm fs.FileMode, expected uint64) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".muzzle-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	current, err := os.ReadFile(path)
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to re-read original: %w", err)
	}
	if xxhash.Sum64(current) != expected {
		_ = os.Remove(tmpPath)
		return ErrConcurrentModification
	}

	// Rename is atomic on POSIX when both paths share a file system.
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}

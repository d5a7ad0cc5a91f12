package rewrite

import (
	"errors"
	"fmt"
)

// ErrConcurrentModification is returned when a file changed on disk between
// being read and being replaced. The file is left as found.
var ErrConcurrentModification = errors.New("file changed on disk while it was being processed")

// Op names the file operation that failed.
type Op string

const (
	OpRead  Op = "read"
	OpWrite Op = "write"
)

// FileError reports a failure to read or write one file.
type FileError struct {
	Path string
	Op   Op
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// GetPath returns the path of the file that failed.
func (e *FileError) GetPath() string {
	return e.Path
}

package source

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEncoding is wrapped by a ReadError when a file is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")

	// ErrNotDirectory is wrapped by a TraversalError when the scan root is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// TraversalError reports a directory or its metadata that could not be read
// during a scan.
type TraversalError struct {
	Op   string // "stat" or "readdir"
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("scan %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// ReadError reports a source file that could not be read as text.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read source file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsTraversal reports whether err is or wraps a *TraversalError.
func IsTraversal(err error) bool {
	var te *TraversalError
	return errors.As(err, &te)
}

// IsRead reports whether err is or wraps a *ReadError.
func IsRead(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

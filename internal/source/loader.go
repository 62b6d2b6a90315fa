package source

import (
	"errors"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// File is a loaded source file.
type File struct {
	Path     string
	Content  string
	Size     int64
	Checksum uint64 // xxhash64 of the raw bytes
}

// Loader reads source files as text.
type Loader struct {
	fs   billy.Filesystem
	opts *options
}

// NewLoader creates a loader over fs.
func NewLoader(fs billy.Filesystem, opts ...Option) *Loader {
	return &Loader{
		fs:   fs,
		opts: newOptions(opts),
	}
}

// LoadFile returns the content of path on the host filesystem.
func LoadFile(path string) (string, error) {
	return NewLoader(NativeFS()).ReadString(path)
}

// ReadString returns the full content of path. Content that is not valid
// UTF-8 is rejected with ErrInvalidEncoding.
func (l *Loader) ReadString(path string) (string, error) {
	data, err := l.read(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Load reads path and returns its content along with its size and checksum.
func (l *Loader) Load(path string) (*File, error) {
	data, err := l.read(path)
	if err != nil {
		return nil, err
	}

	return &File{
		Path:     path,
		Content:  string(data),
		Size:     int64(len(data)),
		Checksum: xxhash.Sum64(data),
	}, nil
}

// LoadAll loads paths in order. With failFast loading stops at the first
// failure, which is returned with the files loaded before it. Otherwise every failure is collected and
// returned joined, alongside the files that did load.
func (l *Loader) LoadAll(paths []string, failFast bool) ([]*File, error) {
	files := make([]*File, 0, len(paths))
	var errs []error

	for _, path := range paths {
		file, err := l.Load(path)
		if err != nil {
			if failFast {
				return files, err
			}
			errs = append(errs, err)
			continue
		}
		files = append(files, file)
	}

	return files, errors.Join(errs...)
}

func (l *Loader) read(path string) ([]byte, error) {
	data, err := util.ReadFile(l.fs, path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	if !utf8.Valid(data) {
		return nil, &ReadError{Path: path, Err: ErrInvalidEncoding}
	}

	l.opts.logger.Debug("loaded source file",
		zap.String("path", path),
		zap.Int("bytes", len(data)))

	return data, nil
}

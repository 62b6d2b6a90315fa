package source

import (
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
)

// Scanner finds source files in a directory tree.
type Scanner struct {
	fs   billy.Filesystem
	opts *options
}

// NewScanner creates a scanner over fs.
func NewScanner(fs billy.Filesystem, opts ...Option) *Scanner {
	return &Scanner{
		fs:   fs,
		opts: newOptions(opts),
	}
}

// ScanDir returns every .crs file under root on the host filesystem.
func ScanDir(root string) ([]string, error) {
	return NewScanner(NativeFS()).Scan(root)
}

// Scan walks root depth-first and returns the path of every non-directory
// entry whose name ends with the scanner's suffix. Entries of a directory
// are visited in name order. Symlinks are not followed.
//
// Any directory that cannot be read aborts the scan; no partial result is
// returned.
func (s *Scanner) Scan(root string) ([]string, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, &TraversalError{Op: "stat", Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &TraversalError{Op: "readdir", Path: root, Err: ErrNotDirectory}
	}

	files := []string{}
	if err := s.walk(root, &files); err != nil {
		return nil, err
	}

	s.opts.logger.Debug("scan complete",
		zap.String("root", root),
		zap.String("suffix", s.opts.suffix),
		zap.Int("files", len(files)))

	return files, nil
}

func (s *Scanner) walk(dir string, files *[]string) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return &TraversalError{Op: "readdir", Path: dir, Err: err}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		path := joinPath(dir, entry.Name())

		if entry.IsDir() {
			if _, skip := s.opts.skipDirs[entry.Name()]; skip {
				s.opts.logger.Debug("skipping directory", zap.String("path", path))
				continue
			}
			if err := s.walk(path, files); err != nil {
				return err
			}
			continue
		}

		if strings.HasSuffix(entry.Name(), s.opts.suffix) {
			*files = append(*files, path)
		}
	}

	return nil
}

// joinPath appends name to dir without cleaning, so a root such as "./src/"
// or "." keeps its spelling in every returned path.
func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}

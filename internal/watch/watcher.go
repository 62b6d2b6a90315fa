// Package watch re-runs source discovery when files in a source tree change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Options configures a FileWatcher
type Options struct {
	Suffix   string   // only files ending with Suffix are reported
	SkipDirs []string // directory names never watched
	Ignored  []string // glob patterns matched against base names
	Debounce time.Duration
	Logger   *zap.Logger
}

// FileWatcher monitors a source tree and reports changed source files
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	root      string
	opts      Options
	skipDirs  map[string]struct{}
	dirs      map[string]struct{} // watched directories, owned by the event loop after Start
	logger    *zap.Logger
	onChange  func([]string) error
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewFileWatcher creates a watcher for root. onChange receives the sorted,
// de-duplicated paths that changed during one debounce window.
func NewFileWatcher(root string, opts Options, onChange func([]string) error) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	skipDirs := make(map[string]struct{}, len(opts.SkipDirs))
	for _, name := range opts.SkipDirs {
		skipDirs[name] = struct{}{}
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(opts.Debounce),
		root:      root,
		opts:      opts,
		skipDirs:  skipDirs,
		dirs:      make(map[string]struct{}),
		logger:    logger,
		onChange:  onChange,
		stopChan:  make(chan struct{}),
	}

	fw.debouncer.SetCallback(func(files []string) {
		if err := fw.onChange(files); err != nil {
			fw.logger.Warn("error handling file changes", zap.Error(err))
		}
	})

	return fw, nil
}

// Start adds the root and every subdirectory to the watch list and begins
// processing events in the background
func (fw *FileWatcher) Start() error {
	dirs, err := fw.findDirectories()
	if err != nil {
		return fmt.Errorf("failed to find directories: %w", err)
	}

	for _, dir := range dirs {
		if err := fw.addDir(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	fw.wg.Add(1)
	go fw.watch()

	return nil
}

// Run starts the watcher and blocks until ctx is done
func (fw *FileWatcher) Run(ctx context.Context) error {
	if err := fw.Start(); err != nil {
		_ = fw.Stop()
		return err
	}

	<-ctx.Done()
	return fw.Stop()
}

// Stop stops the file watcher. It is safe to call more than once.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		close(fw.stopChan)
		err = fw.watcher.Close()
		fw.wg.Wait()
		fw.debouncer.Stop()
	})
	return err
}

// watch is the main event loop
func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handle(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", zap.Error(err))

		case <-fw.stopChan:
			return
		}
	}
}

func (fw *FileWatcher) handle(event fsnotify.Event) {
	if fw.shouldIgnore(event.Name) {
		return
	}

	// A watched directory that goes away takes its source files with it.
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if _, ok := fw.dirs[event.Name]; ok {
			fw.dropDir(event.Name)
			fw.logger.Debug("directory removed", zap.String("dir", event.Name))
			fw.debouncer.Add(event.Name)
			return
		}
	}

	// New directories must be watched too; files may already be inside.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if _, skip := fw.skipDirs[info.Name()]; skip {
				return
			}
			if err := fw.addTree(event.Name); err != nil {
				fw.logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
				return
			}
			fw.debouncer.Add(event.Name)
			return
		}
	}

	if !fw.matchesSuffix(event.Name) {
		return
	}

	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		fw.logger.Debug("file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
		fw.debouncer.Add(event.Name)
	}
}

func (fw *FileWatcher) addDir(dir string) error {
	if err := fw.watcher.Add(dir); err != nil {
		return err
	}
	fw.dirs[dir] = struct{}{}
	fw.logger.Debug("watching directory", zap.String("dir", dir))
	return nil
}

// addTree watches dir and every directory below it, for trees that appear
// in one move or a recursive mkdir.
func (fw *FileWatcher) addTree(dir string) error {
	dirs, err := fw.directoriesUnder(dir)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := fw.addDir(d); err != nil {
			return err
		}
	}
	return nil
}

// dropDir forgets dir and everything below it. A renamed directory keeps
// its inotify watch under the new name, so the watch is removed explicitly;
// a deleted one is already gone and the error is ignored.
func (fw *FileWatcher) dropDir(dir string) {
	prefix := dir + string(filepath.Separator)
	for d := range fw.dirs {
		if d == dir || strings.HasPrefix(d, prefix) {
			_ = fw.watcher.Remove(d)
			delete(fw.dirs, d)
		}
	}
}

// findDirectories returns root and every directory below it that is not
// skipped. Hidden directories are included, as the scanner descends them.
func (fw *FileWatcher) findDirectories() ([]string, error) {
	return fw.directoriesUnder(fw.root)
}

func (fw *FileWatcher) directoriesUnder(top string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(top, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != top {
			if _, skip := fw.skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dirs, nil
}

// shouldIgnore reports whether the base name of path matches an ignore glob
func (fw *FileWatcher) shouldIgnore(path string) bool {
	baseName := filepath.Base(path)
	for _, pattern := range fw.opts.Ignored {
		if matched, _ := filepath.Match(pattern, baseName); matched {
			return true
		}
	}

	return false
}

// matchesSuffix checks if a file name ends with the source suffix
func (fw *FileWatcher) matchesSuffix(path string) bool {
	if fw.opts.Suffix == "" {
		return true
	}
	return strings.HasSuffix(filepath.Base(path), fw.opts.Suffix)
}

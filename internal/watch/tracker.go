package watch

import (
	"sort"
	"sync"

	"github.com/corsac-lang/corsac/internal/source"
)

// Changes lists source files that differ between two scans
type Changes struct {
	Added    []string
	Modified []string
	Removed  []string
}

// Empty reports whether nothing changed
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Removed) == 0
}

// Tracker remembers the checksum of every source file seen by the last scan
// so that saves which do not change content are not reported.
type Tracker struct {
	mu   sync.Mutex
	sums map[string]uint64
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{sums: make(map[string]uint64)}
}

// Update records a new scan. paths is every file the scan found; files is
// the subset that loaded. A path that failed to load keeps its previous
// checksum so it is neither added nor removed.
func (t *Tracker) Update(paths []string, files []*source.File) Changes {
	t.mu.Lock()
	defer t.mu.Unlock()

	loaded := make(map[string]uint64, len(files))
	for _, f := range files {
		loaded[f.Path] = f.Checksum
	}

	var changes Changes
	next := make(map[string]uint64, len(paths))

	for _, path := range paths {
		prev, seen := t.sums[path]
		sum, ok := loaded[path]

		switch {
		case !ok && seen:
			next[path] = prev
		case !ok:
			// never loaded; not tracked until it reads cleanly
		case !seen:
			next[path] = sum
			changes.Added = append(changes.Added, path)
		case prev != sum:
			next[path] = sum
			changes.Modified = append(changes.Modified, path)
		default:
			next[path] = sum
		}
	}

	for path := range t.sums {
		if _, ok := next[path]; !ok {
			changes.Removed = append(changes.Removed, path)
		}
	}

	t.sums = next

	sort.Strings(changes.Added)
	sort.Strings(changes.Modified)
	sort.Strings(changes.Removed)

	return changes
}

// Len returns the number of tracked files
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sums)
}

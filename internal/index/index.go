// Package index implements the ordered manifest of tracked paths.
//
// The index is an ordered set of entries, unique by path, kept in total
// lexicographic order so that point lookups and directory-prefix range
// lookups are single binary-search brackets. It is loaded once per
// invocation under an exclusive lock, mutated in memory, and persisted
// atomically at the end if anything changed (see Store and Lockfile).
package index

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"
)

// Entry is a single tracked path plus the metadata recorded when it was
// last scanned. The mover treats the metadata as opaque; it only inserts,
// removes, and refreshes whole entries.
type Entry struct {
	Path    string      `json:"path"`
	Size    int64       `json:"size"`
	Mode    fs.FileMode `json:"mode"`
	ModTime time.Time   `json:"mtime"`
	Sum     string      `json:"sum,omitempty"`
}

// Index is the in-memory form of the tracked-path manifest. Entries are
// kept sorted by path and unique. All lookups are exact-byte,
// case-sensitive comparisons.
type Index struct {
	entries []Entry
	dirty   bool
}

// New creates an empty Index.
func New() *Index {
	return &Index{}
}

// FromEntries creates an Index from a list of entries, sorting them and
// rejecting duplicate paths.
func FromEntries(entries []Entry) (*Index, error) {
	ix := &Index{entries: make([]Entry, len(entries))}
	copy(ix.entries, entries)
	sort.Slice(ix.entries, func(i, j int) bool {
		return ix.entries[i].Path < ix.entries[j].Path
	})
	for i := 1; i < len(ix.entries); i++ {
		if ix.entries[i].Path == ix.entries[i-1].Path {
			return nil, fmt.Errorf("duplicate index entry %q", ix.entries[i].Path)
		}
	}
	return ix, nil
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Dirty reports whether the index has been mutated since it was created
// or loaded.
func (ix *Index) Dirty() bool {
	return ix.dirty
}

// Entries returns the entries in index order. The returned slice must not
// be mutated by the caller.
func (ix *Index) Entries() []Entry {
	return ix.entries
}

// PositionOf returns the position of path and true if it is present, or
// the position at which it would be inserted and false otherwise.
func (ix *Index) PositionOf(path string) (int, bool) {
	i := sort.Search(len(ix.entries), func(i int) bool {
		return ix.entries[i].Path >= path
	})
	if i < len(ix.entries) && ix.entries[i].Path == path {
		return i, true
	}
	return i, false
}

// Has reports whether path is tracked.
func (ix *Index) Has(path string) bool {
	_, ok := ix.PositionOf(path)
	return ok
}

// Find returns the entry for path, if tracked.
func (ix *Index) Find(path string) (Entry, bool) {
	if i, ok := ix.PositionOf(path); ok {
		return ix.entries[i], true
	}
	return Entry{}, false
}

// RangeWithPrefix returns the contiguous ordered run of entries whose
// path starts with dir + "/". The result is empty if dir is not a tracked
// directory prefix. The returned slice aliases the index and must not be
// mutated.
func (ix *Index) RangeWithPrefix(dir string) []Entry {
	prefix := dir
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	// Entries sort after the prefix itself, so the insertion point for
	// the prefix is the first candidate.
	lo, _ := ix.PositionOf(prefix)
	hi := lo
	for hi < len(ix.entries) && strings.HasPrefix(ix.entries[hi].Path, prefix) {
		hi++
	}
	return ix.entries[lo:hi]
}

// Insert adds an entry, replacing any existing entry with the same path,
// and marks the index dirty.
func (ix *Index) Insert(e Entry) {
	i, ok := ix.PositionOf(e.Path)
	if ok {
		ix.entries[i] = e
	} else {
		ix.entries = append(ix.entries, Entry{})
		copy(ix.entries[i+1:], ix.entries[i:])
		ix.entries[i] = e
	}
	ix.dirty = true
}

// Refresh replaces the metadata of an entry that must already be present,
// and marks the index dirty. It returns an error if the path is not
// tracked; callers treat that as a broken invariant.
func (ix *Index) Refresh(e Entry) error {
	i, ok := ix.PositionOf(e.Path)
	if !ok {
		return fmt.Errorf("no index entry for %q", e.Path)
	}
	ix.entries[i] = e
	ix.dirty = true
	return nil
}

// Remove deletes the entry for path and marks the index dirty. It reports
// whether an entry was removed.
func (ix *Index) Remove(path string) bool {
	i, ok := ix.PositionOf(path)
	if !ok {
		return false
	}
	ix.entries = append(ix.entries[:i], ix.entries[i+1:]...)
	ix.dirty = true
	return true
}

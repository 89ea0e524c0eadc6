package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/trackmv/trackmv/internal/fsops"
)

// formatVersion is the on-disk index format version.
const formatVersion = 1

// ErrPersist indicates the rewritten index could not be committed. The
// in-memory and on-disk states may now disagree, so it is always fatal.
var ErrPersist = errors.New("failed to persist index")

// indexFile is the persisted JSON shape of the index.
type indexFile struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Store persists the index as versioned JSON at a fixed path.
type Store struct {
	fs   fsops.FS
	path string
}

// NewStore creates a Store backed by the file at path.
func NewStore(fs fsops.FS, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Create writes an empty index file. It fails if one already exists.
func (s *Store) Create() error {
	exists, err := s.fs.Exists(s.path)
	if err != nil {
		return fmt.Errorf("failed to check index file: %w", err)
	}
	if exists {
		return fmt.Errorf("index file already exists at %s", s.path)
	}

	data, err := encode(New())
	if err != nil {
		return err
	}
	if err := s.fs.AtomicWrite(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	return nil
}

// Handle is a loaded index together with the exclusive hold protecting
// it. Exactly one of Commit or Close releases the hold; Close is safe to
// defer unconditionally because it is a no-op after Commit.
type Handle struct {
	idx  *Index
	lock *Lockfile
}

// Open acquires the exclusive hold and loads the index. A missing index
// file yields an empty index (the hold is still taken, so a concurrent
// init cannot race the first commit).
func (s *Store) Open() (*Handle, error) {
	lock, err := AcquireLock(s.path)
	if err != nil {
		return nil, err
	}

	idx, err := s.load()
	if err != nil {
		_ = lock.Discard()
		return nil, err
	}

	return &Handle{idx: idx, lock: lock}, nil
}

// load reads and decodes the index file.
func (s *Store) load() (*Index, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var f indexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("index file corrupt: %w", err)
	}
	if f.Version != formatVersion {
		return nil, fmt.Errorf("unsupported index format version %d", f.Version)
	}

	return FromEntries(f.Entries)
}

// Index returns the loaded index.
func (h *Handle) Index() *Index {
	return h.idx
}

// Commit persists the index atomically if it is dirty and releases the
// hold either way. A failed write or rename is wrapped in ErrPersist.
func (h *Handle) Commit() error {
	if !h.idx.Dirty() {
		return h.lock.Discard()
	}

	data, err := encode(h.idx)
	if err != nil {
		_ = h.lock.Discard()
		return err
	}
	if err := h.lock.Commit(data); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// Close releases the hold without persisting. It is a no-op if Commit
// already ran.
func (h *Handle) Close() error {
	return h.lock.Discard()
}

func encode(idx *Index) ([]byte, error) {
	f := indexFile{Version: formatVersion, Entries: idx.Entries()}
	if f.Entries == nil {
		f.Entries = []Entry{}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal index: %w", err)
	}
	return append(data, '\n'), nil
}

package mover

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/trackmv/trackmv/internal/fsops"
	"github.com/trackmv/trackmv/internal/hash"
	"github.com/trackmv/trackmv/internal/index"
)

// writeFile creates a file (and its parents) under root with throwaway
// content.
func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", rel, err)
	}
	if err := os.WriteFile(abs, []byte("content of "+rel), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// mkdir creates a bare directory under root.
func mkdir(t *testing.T, root, rel string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0755); err != nil {
		t.Fatalf("failed to mkdir %s: %v", rel, err)
	}
}

// buildIndex builds a clean (non-dirty) index tracking the given paths.
func buildIndex(t *testing.T, paths ...string) *index.Index {
	t.Helper()
	entries := make([]index.Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, index.Entry{Path: p})
	}
	ix, err := index.FromEntries(entries)
	if err != nil {
		t.Fatalf("FromEntries() error = %v", err)
	}
	return ix
}

// exists reports whether rel exists under root.
func exists(t *testing.T, root, rel string) bool {
	t.Helper()
	_, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("lstat %s: %v", rel, err)
	}
	return err == nil
}

// equalPaths fails the test unless got and want hold the same paths in
// the same order.
func equalPaths(t *testing.T, what string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", what, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, want %v", what, got, want)
		}
	}
}

func newValidator(ix *index.Index, root string, opts Options) *Validator {
	return NewValidator(fsops.NewRealFS(), ix, root, opts, io.Discard, io.Discard)
}

func newExecutor(ix *index.Index, root string, opts Options) *Executor {
	return NewExecutor(fsops.NewRealFS(), hash.NewFakeHasher(), ix, root, opts, io.Discard, io.Discard)
}

// osSymlink creates a symlink at rel under root pointing at target.
func osSymlink(target, root, rel string) error {
	return os.Symlink(target, filepath.Join(root, filepath.FromSlash(rel)))
}

// errRenameBlocked is returned by renameFS for blocked source paths.
var errRenameBlocked = errors.New("rename blocked")

// renameFS wraps RealFS, counting renames and failing configured sources.
type renameFS struct {
	*fsops.RealFS
	calls   int
	blocked map[string]bool // absolute source path -> fail
}

func newRenameFS() *renameFS {
	return &renameFS{RealFS: fsops.NewRealFS(), blocked: make(map[string]bool)}
}

func (f *renameFS) Rename(oldpath, newpath string) error {
	f.calls++
	if f.blocked[oldpath] {
		return errRenameBlocked
	}
	return f.RealFS.Rename(oldpath, newpath)
}

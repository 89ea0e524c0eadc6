// Package worktree locates the trackmv working-tree root and resolves
// user-provided paths to clean root-relative paths.
//
// A working tree is any directory containing a .trackmv directory, which
// holds the index and optional configuration. Discovery walks up from the
// current directory the same way git discovers its repository root.
package worktree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MetaDir is the marker directory that identifies a working-tree root.
const MetaDir = ".trackmv"

// indexFileName is the name of the index file inside MetaDir.
const indexFileName = "index.json"

// configFileName is the name of the optional config file inside MetaDir.
const configFileName = "config.yaml"

// ErrNotFound indicates no working tree was found above the start directory.
var ErrNotFound = errors.New("not inside a trackmv working tree (run 'trackmv init' first)")

// ErrExists indicates a working tree is already initialized at the directory.
var ErrExists = errors.New("working tree already initialized")

// Discover finds the working-tree root by walking up from dir looking for
// the .trackmv marker directory.
func Discover(dir string) (string, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		marker := filepath.Join(current, MetaDir)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			return "", ErrNotFound
		}
		current = parent
	}
}

// Init creates the .trackmv marker directory under root.
// Returns ErrExists if the directory is already present.
func Init(root string) error {
	marker := filepath.Join(root, MetaDir)
	if _, err := os.Stat(marker); err == nil {
		return fmt.Errorf("%w at %s", ErrExists, root)
	}
	if err := os.MkdirAll(marker, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", marker, err)
	}
	return nil
}

// IndexPath returns the path of the index file for the given root.
func IndexPath(root string) string {
	return filepath.Join(root, MetaDir, indexFileName)
}

// ConfigPath returns the path of the config file for the given root.
func ConfigPath(root string) string {
	return filepath.Join(root, MetaDir, configFileName)
}

// RelPath resolves a user-provided path (absolute, relative, or containing
// "..") to a clean, slash-separated root-relative path. It rejects paths
// that escape the working tree and paths that reach into the .trackmv
// metadata directory. The root itself resolves to ".".
func RelPath(root, cwd, userPath string) (string, error) {
	var absPath string
	if filepath.IsAbs(userPath) {
		absPath = userPath
	} else {
		absPath = filepath.Join(cwd, userPath)
	}
	absPath = filepath.Clean(absPath)

	rel, err := filepath.Rel(filepath.Clean(root), absPath)
	if err != nil {
		return "", fmt.Errorf("failed to compute root-relative path for %q: %w", userPath, err)
	}

	rel = filepath.ToSlash(rel)

	// Reject paths outside the working tree
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path %q resolves to %q which is outside the working tree", userPath, absPath)
	}

	// Reject the metadata directory
	if rel == MetaDir || strings.HasPrefix(rel, MetaDir+"/") {
		return "", fmt.Errorf("path %q is inside the %s metadata directory", userPath, MetaDir)
	}

	return rel, nil
}

package mover

import (
	"path/filepath"
	"strings"
)

// containsPath reports whether sub is base itself or nested under it.
// Both paths must be clean and slash-separated.
func containsPath(base, sub string) bool {
	return sub == base || strings.HasPrefix(sub, base+"/")
}

// absPath joins a root-relative slash path onto the working-tree root.
func absPath(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

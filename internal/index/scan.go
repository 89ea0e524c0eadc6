package index

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"

	"github.com/trackmv/trackmv/internal/fsops"
	"github.com/trackmv/trackmv/internal/hash"
)

// ScanEntry builds an Entry for relPath by examining the file at absPath.
// Regular files are hashed with the given hasher; symlinks record a hash
// of the link target instead. Directories are never index entries.
func ScanEntry(fsys fsops.FS, hasher hash.Hasher, absPath, relPath string) (Entry, error) {
	info, err := fsys.Lstat(absPath)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to stat %s: %w", absPath, err)
	}
	if info.IsDir() {
		return Entry{}, fmt.Errorf("cannot index directory %s", relPath)
	}

	e := Entry{
		Path:    relPath,
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
	}

	switch {
	case info.Mode().IsRegular():
		sum, err := hasher.HashFile(absPath)
		if err != nil {
			return Entry{}, fmt.Errorf("failed to hash %s: %w", relPath, err)
		}
		e.Sum = sum
	case info.Mode()&fs.ModeSymlink != 0:
		// Fingerprint the target path, not the target content.
		target, err := fsys.Readlink(absPath)
		if err != nil {
			return Entry{}, fmt.Errorf("failed to read link %s: %w", relPath, err)
		}
		sum := sha256.Sum256([]byte(target))
		e.Sum = hex.EncodeToString(sum[:])
	}

	return e, nil
}

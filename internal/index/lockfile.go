package index

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// ErrLocked indicates the index is held by another process.
var ErrLocked = errors.New("index is locked by another process")

// Lockfile is an exclusive hold on the index's backing store.
//
// Acquiring creates <path>.lock with O_CREATE|O_EXCL, so a concurrent
// second invocation fails rather than racing. New index content is
// written into the lock file itself; Commit then renames the lock file
// over the index, which both publishes the content atomically and
// releases the hold. Discard releases the hold without publishing and is
// safe to call after Commit, so callers can defer it on every exit path.
type Lockfile struct {
	path      string
	lockPath  string
	file      *os.File
	committed bool
	discarded bool
}

// AcquireLock takes the exclusive hold for the store at path.
func AcquireLock(path string) (*Lockfile, error) {
	lockPath := path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w (remove %s if no trackmv process is running)", ErrLocked, lockPath)
		}
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}

	// Record the holder for diagnostics. The token is overwritten by the
	// real content on Commit.
	host, _ := os.Hostname()
	token := fmt.Sprintf("%s %d %s\n", uuid.NewString(), os.Getpid(), host)
	if _, err := f.WriteString(token); err != nil {
		_ = f.Close()
		_ = os.Remove(lockPath)
		return nil, fmt.Errorf("failed to write lock token: %w", err)
	}

	return &Lockfile{path: path, lockPath: lockPath, file: f}, nil
}

// Commit writes data into the lock file and renames it over the store,
// atomically publishing the new content and releasing the hold.
func (l *Lockfile) Commit(data []byte) error {
	if l.committed || l.discarded {
		return fmt.Errorf("lock on %s already released", l.path)
	}

	if err := l.file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate lock file: %w", err)
	}
	if _, err := l.file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind lock file: %w", err)
	}
	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync lock file: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}

	if err := os.Rename(l.lockPath, l.path); err != nil {
		return fmt.Errorf("failed to commit lock file: %w", err)
	}

	l.committed = true
	return nil
}

// Discard releases the hold without publishing anything. It is a no-op
// after Commit or a previous Discard.
func (l *Lockfile) Discard() error {
	if l.committed || l.discarded {
		return nil
	}
	l.discarded = true

	_ = l.file.Close()
	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

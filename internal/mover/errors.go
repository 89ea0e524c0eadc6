package mover

import (
	"errors"
	"fmt"
)

// Reason identifies why the validator rejected a pair. The values double
// as the user-visible reason strings; their check order is fixed and the
// first failing check wins.
type Reason string

const (
	ReasonBadSource       Reason = "bad source"
	ReasonDirOverFile     Reason = "cannot move directory over file"
	ReasonEmptyDir        Reason = "source directory is empty"
	ReasonDestExists      Reason = "destination exists"
	ReasonCannotOverwrite Reason = "cannot overwrite"
	ReasonIntoSelf        Reason = "cannot move directory into itself"
	ReasonNotTracked      Reason = "not under version control"
	ReasonDuplicateDest   Reason = "multiple sources for the same destination"
)

var (
	// ErrMultipleSources indicates several sources were given but the
	// destination is not an existing directory.
	ErrMultipleSources = errors.New("moving multiple sources requires the destination to be an existing directory")

	// ErrNothingToMove indicates ignore-errors compaction rejected every
	// pair.
	ErrNothingToMove = errors.New("no valid moves remain")

	// ErrInternal indicates a state the validator guarantees impossible,
	// e.g. an index entry that vanished mid-run. Never ignored.
	ErrInternal = errors.New("internal error")
)

// ValidationError is a per-pair rejection. It is fatal unless the run
// ignores errors, in which case the pair is dropped from the plan.
type ValidationError struct {
	Source string
	Dest   string
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s, source=%s, destination=%s", e.Reason, e.Source, e.Dest)
}

// RenameError is a filesystem rename failure during execution.
type RenameError struct {
	Source string
	Dest   string
	Err    error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("renaming %s to %s failed: %v", e.Source, e.Dest, e.Err)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

// Package mover plans and executes tracked-path moves.
//
// A move reconciles two independently-mutable resources: the filesystem
// and the tracked-path index. The package is split along that seam:
//
//   - Validator turns raw (source, destination) pairs into an ordered,
//     expanded Plan, rejecting pairs with the first bad reason found and
//     expanding directory sources into per-file index updates via an
//     ordered range scan of the index.
//   - Executor walks the plan in order, renaming on disk where the pair
//     requires it and classifying every move into the changed, added, and
//     deleted sets that drive the trailing index-mutation phase.
//   - Reporter renders the dry-run summary without mutating anything.
//
// Persistence of the mutated index is the caller's job, through
// index.Handle, so that the exclusive hold spans load, move, and commit.
package mover

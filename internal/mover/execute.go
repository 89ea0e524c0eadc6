package mover

import (
	"fmt"
	"io"

	"github.com/trackmv/trackmv/internal/fsops"
	"github.com/trackmv/trackmv/internal/hash"
	"github.com/trackmv/trackmv/internal/index"
)

// Executor applies a validated plan: filesystem renames in plan order,
// then the index mutations derived from the classification sets.
//
// Execution is not transactional. A rename failure under ignore-errors
// skips that pair and keeps going; index mutations always match what was
// actually moved on disk.
type Executor struct {
	fs     fsops.FS
	hasher hash.Hasher
	idx    *index.Index
	root   string
	opts   Options
	out    io.Writer
	errOut io.Writer
}

// NewExecutor creates an Executor over the same index the plan was
// validated against.
func NewExecutor(fs fsops.FS, hasher hash.Hasher, idx *index.Index, root string, opts Options, out, errOut io.Writer) *Executor {
	return &Executor{
		fs:     fs,
		hasher: hasher,
		idx:    idx,
		root:   root,
		opts:   opts,
		out:    out,
		errOut: errOut,
	}
}

// Result holds the changed/added/deleted classification of one run. A
// dry run produces the same classification a real run would, without any
// mutation.
type Result struct {
	Changed []string
	Added   []string
	Deleted []string
}

// Run executes the plan. Under dry-run the rename and index phases are
// skipped entirely; only the classification is computed.
func (e *Executor) Run(plan *Plan) (*Result, error) {
	res := &Result{}

	for _, p := range plan.Pairs {
		rename := p.Mode != ModeIndexOnly

		if e.opts.DryRun || (e.opts.Verbose && rename) {
			fmt.Fprintf(e.out, "Renaming %s to %s\n", p.Source, p.Dest)
		}

		if !e.opts.DryRun && rename {
			if err := e.fs.Rename(absPath(e.root, p.Source), absPath(e.root, p.Dest)); err != nil {
				rerr := &RenameError{Source: p.Source, Dest: p.Dest, Err: err}
				if !e.opts.IgnoreErrors {
					return res, rerr
				}
				fmt.Fprintf(e.errOut, "warning: %v\n", rerr)
				continue
			}
		}

		if p.Mode == ModeDirRename {
			// The directory itself is never an index entry.
			continue
		}

		if e.idx.Has(p.Source) {
			res.Deleted = append(res.Deleted, p.Source)
			if plan.Overwritten[p.Dest] {
				res.Changed = append(res.Changed, p.Dest)
			} else {
				res.Added = append(res.Added, p.Dest)
			}
		} else {
			// Validated pairs are always tracked; tolerate the gap by
			// recording a plain addition.
			res.Added = append(res.Added, p.Dest)
		}
	}

	if e.opts.DryRun {
		return res, nil
	}

	// Index mutation phase: refresh replaced destinations in place,
	// insert fresh entries for additions, then drop the old sources.
	for _, path := range res.Changed {
		entry, err := index.ScanEntry(e.fs, e.hasher, absPath(e.root, path), path)
		if err != nil {
			return res, fmt.Errorf("failed to rescan %s: %w", path, err)
		}
		if err := e.idx.Refresh(entry); err != nil {
			return res, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}
	for _, path := range res.Added {
		entry, err := index.ScanEntry(e.fs, e.hasher, absPath(e.root, path), path)
		if err != nil {
			return res, fmt.Errorf("failed to scan %s: %w", path, err)
		}
		e.idx.Insert(entry)
	}
	for _, path := range res.Deleted {
		e.idx.Remove(path)
	}

	return res, nil
}

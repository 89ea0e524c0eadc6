package mover

import (
	"io"

	"github.com/trackmv/trackmv/internal/fsops"
	"github.com/trackmv/trackmv/internal/hash"
	"github.com/trackmv/trackmv/internal/index"
)

// Options control a single move invocation.
type Options struct {
	// DryRun validates and reports without mutating anything.
	DryRun bool

	// Force authorizes overwriting an existing plain-file destination.
	Force bool

	// IgnoreErrors downgrades per-pair validation and rename failures to
	// warnings and keeps going with the remaining pairs.
	IgnoreErrors bool

	// Verbose prints one line per performed rename.
	Verbose bool
}

// Mover wires the validator, executor, and reporter over one loaded
// index. It runs the full validate, execute, report pipeline; persisting
// the mutated index stays with the caller so the exclusive hold spans the
// whole invocation.
type Mover struct {
	fs     fsops.FS
	hasher hash.Hasher
	idx    *index.Index
	root   string
	opts   Options
	out    io.Writer
	errOut io.Writer
}

// New creates a Mover rooted at the working-tree root.
func New(fs fsops.FS, hasher hash.Hasher, idx *index.Index, root string, opts Options, out, errOut io.Writer) *Mover {
	return &Mover{
		fs:     fs,
		hasher: hasher,
		idx:    idx,
		root:   root,
		opts:   opts,
		out:    out,
		errOut: errOut,
	}
}

// Move validates and executes the move of sources to dest. Paths must be
// clean root-relative slash paths. Under dry-run it prints the summary
// that a real run would produce.
func (m *Mover) Move(sources []string, dest string) (*Result, error) {
	v := NewValidator(m.fs, m.idx, m.root, m.opts, m.out, m.errOut)
	plan, err := v.Plan(sources, dest)
	if err != nil {
		return nil, err
	}

	ex := NewExecutor(m.fs, m.hasher, m.idx, m.root, m.opts, m.out, m.errOut)
	res, err := ex.Run(plan)
	if err != nil {
		return res, err
	}

	if m.opts.DryRun {
		NewReporter(m.out).Summary(res)
	}
	return res, nil
}

package mover

import (
	"fmt"
	"io"
	"path"

	"github.com/trackmv/trackmv/internal/fsops"
	"github.com/trackmv/trackmv/internal/index"
)

// Validator checks raw (source, destination) pairs against filesystem and
// index state and expands directory sources into per-file pairs. It is a
// pure read-only pass: no filesystem or index mutation happens here.
type Validator struct {
	fs     fsops.FS
	idx    *index.Index
	root   string
	opts   Options
	out    io.Writer
	errOut io.Writer
}

// NewValidator creates a Validator over the given index snapshot.
func NewValidator(fs fsops.FS, idx *index.Index, root string, opts Options, out, errOut io.Writer) *Validator {
	return &Validator{
		fs:     fs,
		idx:    idx,
		root:   root,
		opts:   opts,
		out:    out,
		errOut: errOut,
	}
}

// Plan resolves the destination argument, validates every pair in input
// order, and returns the expanded plan. Without ignore-errors the first
// rejection aborts; with it, rejected pairs are dropped and the rest keep
// their relative order. Directory expansion appends pairs to the working
// list, and appended pairs are validated in the same pass.
func (v *Validator) Plan(sources []string, dest string) (*Plan, error) {
	pairs, err := v.resolveDest(sources, dest)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Pairs: pairs, Overwritten: make(map[string]bool)}
	seen := make(map[string]bool)

	for i := 0; i < len(plan.Pairs); i++ {
		if v.opts.DryRun {
			fmt.Fprintf(v.out, "Checking rename of '%s' to '%s'\n", plan.Pairs[i].Source, plan.Pairs[i].Dest)
		}

		reason, err := v.check(plan, i, seen)
		if err != nil {
			return nil, err
		}
		if reason == "" {
			continue
		}

		verr := &ValidationError{
			Source: plan.Pairs[i].Source,
			Dest:   plan.Pairs[i].Dest,
			Reason: reason,
		}
		if !v.opts.IgnoreErrors {
			return nil, verr
		}
		fmt.Fprintf(v.errOut, "warning: skipping: %v\n", verr)
		plan.Pairs = append(plan.Pairs[:i], plan.Pairs[i+1:]...)
		i--
	}

	if len(plan.Pairs) == 0 {
		return nil, ErrNothingToMove
	}
	return plan, nil
}

// resolveDest turns the single destination argument into per-source
// destinations. If it denotes an existing directory, every source lands
// under it keeping its base name; otherwise exactly one source is
// allowed.
func (v *Validator) resolveDest(sources []string, dest string) ([]Pair, error) {
	info, err := v.fs.Lstat(absPath(v.root, dest))
	destIsDir := err == nil && info.IsDir()

	if !destIsDir && len(sources) != 1 {
		return nil, ErrMultipleSources
	}

	pairs := make([]Pair, 0, len(sources))
	for _, src := range sources {
		d := dest
		if destIsDir {
			d = path.Join(dest, path.Base(src))
		}
		pairs = append(pairs, Pair{Source: src, Dest: d, Mode: ModeDirect})
	}
	return pairs, nil
}

// check applies the rejection checks to pair i in priority order and
// returns the first bad reason, or "" if the pair is valid. Directory
// sources are expanded in place. A non-nil error means a broken
// invariant, not a rejection.
func (v *Validator) check(plan *Plan, i int, seen map[string]bool) (Reason, error) {
	p := &plan.Pairs[i]

	info, err := v.fs.Lstat(absPath(v.root, p.Source))
	if err != nil {
		return ReasonBadSource, nil
	}

	if info.IsDir() {
		return v.checkDir(plan, i)
	}

	if dstInfo, err := v.fs.Lstat(absPath(v.root, p.Dest)); err == nil {
		if !v.opts.Force {
			return ReasonDestExists, nil
		}
		// Only plain files may overwrite each other.
		if !dstInfo.Mode().IsRegular() {
			return ReasonCannotOverwrite, nil
		}
		fmt.Fprintf(v.errOut, "warning: destination exists; will overwrite %s\n", p.Dest)
		plan.Overwritten[p.Dest] = true
	}

	if containsPath(p.Source, p.Dest) {
		return ReasonIntoSelf, nil
	}

	if !v.idx.Has(p.Source) {
		return ReasonNotTracked, nil
	}

	if seen[p.Dest] {
		return ReasonDuplicateDest, nil
	}
	seen[p.Dest] = true

	return "", nil
}

// checkDir validates a directory source and expands its tracked children
// into ModeIndexOnly pairs appended to the working list. The appended
// pairs run through check like any other, so duplicate-destination
// detection sees them.
func (v *Validator) checkDir(plan *Plan, i int) (Reason, error) {
	src := plan.Pairs[i].Source
	dst := plan.Pairs[i].Dest

	if _, err := v.fs.Lstat(absPath(v.root, dst)); err == nil {
		return ReasonDirOverFile, nil
	}

	if v.idx.Has(src) {
		return "", fmt.Errorf("%w: directory %s is itself an index entry", ErrInternal, src)
	}

	entries := v.idx.RangeWithPrefix(src)
	if len(entries) == 0 {
		return ReasonEmptyDir, nil
	}

	// A directory can never move beneath itself, force or not.
	if containsPath(src, dst) {
		return ReasonIntoSelf, nil
	}

	plan.Pairs[i].Mode = ModeDirRename
	for _, e := range entries {
		plan.Pairs = append(plan.Pairs, Pair{
			Source: e.Path,
			Dest:   dst + "/" + e.Path[len(src)+1:],
			Mode:   ModeIndexOnly,
		})
	}
	return "", nil
}

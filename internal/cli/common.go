package cli

import (
	"fmt"
	"os"

	"github.com/trackmv/trackmv/internal/config"
	"github.com/trackmv/trackmv/internal/fsops"
	"github.com/trackmv/trackmv/internal/hash"
	"github.com/trackmv/trackmv/internal/index"
	"github.com/trackmv/trackmv/internal/worktree"
)

// treeContext bundles everything a command needs to operate on the
// discovered working tree.
type treeContext struct {
	cwd    string
	root   string
	cfg    *config.Config
	fs     fsops.FS
	hasher hash.Hasher
	store  *index.Store
}

// openTree discovers the working tree from the current directory, loads
// its configuration, and wires real implementations of all dependencies.
func openTree() (*treeContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	root, err := worktree.Discover(cwd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(worktree.ConfigPath(root))
	if err != nil {
		return nil, err
	}
	applyColorMode(cfg.Output.Color)

	fs := fsops.NewRealFS()
	return &treeContext{
		cwd:    cwd,
		root:   root,
		cfg:    cfg,
		fs:     fs,
		hasher: hash.NewSHA256Hasher(),
		store:  index.NewStore(fs, worktree.IndexPath(root)),
	}, nil
}

// relArgs resolves user-provided path arguments to clean root-relative
// slash paths.
func (tc *treeContext) relArgs(args []string) ([]string, error) {
	rels := make([]string, 0, len(args))
	for _, a := range args {
		rel, err := worktree.RelPath(tc.root, tc.cwd, a)
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, nil
}

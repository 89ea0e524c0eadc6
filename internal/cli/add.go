package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trackmv/trackmv/internal/index"
	"github.com/trackmv/trackmv/internal/worktree"
)

var addCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Track files in the index",
	Long: `Record files in the index with their current size, mode, mtime, and
content hash. Directories are walked recursively; already-tracked paths
are rescanned in place.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tc, err := openTree()
		if err != nil {
			return err
		}

		h, err := tc.store.Open()
		if err != nil {
			return err
		}
		defer func() {
			_ = h.Close()
		}()
		idx := h.Index()

		count := 0
		for _, arg := range args {
			rel, err := worktree.RelPath(tc.root, tc.cwd, arg)
			if err != nil {
				return err
			}

			abs := filepath.Join(tc.root, filepath.FromSlash(rel))
			info, err := tc.fs.Lstat(abs)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", arg, err)
			}

			if !info.IsDir() {
				entry, err := index.ScanEntry(tc.fs, tc.hasher, abs, rel)
				if err != nil {
					return err
				}
				idx.Insert(entry)
				count++
				continue
			}

			err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if d.Name() == worktree.MetaDir {
						return filepath.SkipDir
					}
					return nil
				}
				childRel, err := worktree.RelPath(tc.root, tc.cwd, p)
				if err != nil {
					return err
				}
				entry, err := index.ScanEntry(tc.fs, tc.hasher, p, childRel)
				if err != nil {
					return err
				}
				idx.Insert(entry)
				count++
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to walk %s: %w", arg, err)
			}
		}

		if err := h.Commit(); err != nil {
			return err
		}

		PrintSuccess(fmt.Sprintf("Tracked %s", PrintCount(count, "path", "paths")))
		return nil
	},
}

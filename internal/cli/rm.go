package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>...",
	Short: "Untrack paths without touching the filesystem",
	Long: `Remove paths from the index. Files on disk are left alone. A directory
argument untracks every indexed file beneath it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tc, err := openTree()
		if err != nil {
			return err
		}

		rels, err := tc.relArgs(args)
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

		removed := 0
		for i, rel := range rels {
			if idx.Remove(rel) {
				removed++
				continue
			}

			// Not an entry itself: try it as a tracked directory prefix.
			entries := idx.RangeWithPrefix(rel)
			if len(entries) == 0 {
				PrintWarning(fmt.Sprintf("%s is not under version control", args[i]))
				continue
			}
			paths := make([]string, 0, len(entries))
			for _, e := range entries {
				paths = append(paths, e.Path)
			}
			for _, p := range paths {
				idx.Remove(p)
				removed++
			}
		}

		if err := h.Commit(); err != nil {
			return err
		}

		PrintSuccess(fmt.Sprintf("Untracked %s", PrintCount(removed, "path", "paths")))
		return nil
	},
}

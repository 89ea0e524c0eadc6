package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lsLong bool

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tracked paths in index order",
	Args:  cobra.NoArgs,
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

		entries := h.Index().Entries()
		if len(entries) == 0 {
			PrintEmptyState("no tracked paths")
			return nil
		}

		out := cmd.OutOrStdout()
		for _, e := range entries {
			if lsLong {
				sum := e.Sum
				if len(sum) > 12 {
					sum = sum[:12]
				}
				fmt.Fprintf(out, "%s %8d %-12s %s\n", e.Mode, e.Size, sum, e.Path)
			} else {
				fmt.Fprintln(out, e.Path)
			}
		}
		return nil
	},
}

func init() {
	lsCmd.Flags().BoolVarP(&lsLong, "long", "l", false, "Show mode, size, and content hash")
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trackmv/trackmv/internal/fsops"
	"github.com/trackmv/trackmv/internal/index"
	"github.com/trackmv/trackmv/internal/worktree"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a trackmv working tree in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		if err := worktree.Init(cwd); err != nil {
			return err
		}

		fs := fsops.NewRealFS()
		if err := index.NewStore(fs, worktree.IndexPath(cwd)).Create(); err != nil {
			return err
		}

		PrintSuccess(fmt.Sprintf("Initialized empty trackmv index in %s/", worktree.MetaDir))
		return nil
	},
}

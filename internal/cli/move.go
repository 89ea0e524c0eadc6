package cli

import (
	"github.com/spf13/cobra"

	"github.com/trackmv/trackmv/internal/mover"
)

var (
	moveDryRun       bool
	moveForce        bool
	moveIgnoreErrors bool
	moveVerbose      bool
)

var moveCmd = &cobra.Command{
	Use:     "mv [-n] [-f] [-k] <source>... <destination>",
	Aliases: []string{"move"},
	Short:   "Move tracked files and directories, updating the index",
	Long: `Move one or more tracked sources to a destination, renaming on disk and
rewriting the index entries to the new locations.

If the destination is an existing directory, every source is moved under
it keeping its base name; otherwise exactly one source is allowed. Moving
a directory renames it once on disk and rewrites the index entry of every
tracked file beneath it.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tc, err := openTree()
		if err != nil {
			return err
		}

		sources, err := tc.relArgs(args[:len(args)-1])
		if err != nil {
			return err
		}
		dest, err := tc.relArgs(args[len(args)-1:])
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

		opts := mover.Options{
			DryRun:       moveDryRun,
			Force:        moveForce,
			IgnoreErrors: moveIgnoreErrors || tc.cfg.Move.IgnoreErrors,
			Verbose:      moveVerbose || tc.cfg.Output.Verbose,
		}

		m := mover.New(tc.fs, tc.hasher, h.Index(), tc.root, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		if _, err := m.Move(sources, dest[0]); err != nil {
			return err
		}

		if opts.DryRun {
			return nil
		}
		return h.Commit()
	},
}

func init() {
	moveCmd.Flags().BoolVarP(&moveDryRun, "dry-run", "n", false, "Report what would move without moving anything")
	moveCmd.Flags().BoolVarP(&moveForce, "force", "f", false, "Overwrite an existing plain-file destination")
	moveCmd.Flags().BoolVarP(&moveIgnoreErrors, "ignore-errors", "k", false, "Skip pairs that fail instead of aborting")
	moveCmd.Flags().BoolVarP(&moveVerbose, "verbose", "v", false, "Print each rename as it happens")
}

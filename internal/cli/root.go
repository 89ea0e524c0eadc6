package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the root command for trackmv.
var rootCmd = &cobra.Command{
	Use:     "trackmv",
	Version: "dev",
	Short:   "Move files while keeping a tracked-path index in sync",
	Long: `trackmv keeps an ordered index of tracked files under a working tree
and moves files and directories on disk while keeping that index
consistent with the new locations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion overrides the version reported by the root command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(moveCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the trackmv version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(os.Stdout, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

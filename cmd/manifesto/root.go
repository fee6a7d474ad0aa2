package main

import (
	"github.com/spf13/cobra"
)

// rootFlags holds the flags shared by every subcommand.
type rootFlags struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "manifesto",
		Short:         "manifesto reconciles a host against a set of declarative manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newApplyCmd(flags))
	cmd.AddCommand(newStatusCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

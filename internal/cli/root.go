package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "contact",
		Short:        "Submit messages to the portfolio contact endpoint",
		SilenceUsage: true,
	}
	cmd.AddCommand(sendCmd())
	return cmd
}

package commands

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	CLIName = "segal"
)

var rootCmd = &cobra.Command{
	Use:   CLIName,
	Short: "Sliding-window stream transforms",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(NewWindowCommand())
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

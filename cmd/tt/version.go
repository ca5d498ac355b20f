package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildVersion = "dev"
var buildCommit = "unknown"

func init() {
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func versionString() string {
	return fmt.Sprintf("tt %s (commit %s)", buildVersion, buildCommit)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tt version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

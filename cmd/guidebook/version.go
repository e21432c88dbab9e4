package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/guidebook/browser"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the guidebook version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "guidebook %s (seed %s, %s)\n", version, browser.Version, browser.VersionDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

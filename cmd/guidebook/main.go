package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "guidebook",
	Short: "Serve and browse a catalog of Markdown guides",
	Long: `guidebook turns a directory of Markdown files into a guide browser:
a web server with live sessions, a terminal browser over the same state
machine, and a scaffold for new guide collections.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "guidebook.yaml", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

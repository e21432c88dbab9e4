package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/guidebook/browser"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Print the guides whose text contains query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, g := range browser.Search(catalog.Guides(), strings.Join(args, " ")) {
			fmt.Fprintf(out, "%s\t%s\n", g.Slug, g.MenuTitle)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eringen/guidebook/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new <dir>",
	Short: "Create a new guide collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		name := filepath.Base(dir)
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Creating new guide collection: %s\n\n", dir)
		data := scaffold.Data{
			ProjectName:   name,
			SiteName:      scaffold.ToTitle(name),
			SessionSecret: strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", ""),
		}
		if err := scaffold.Generate(dir, data, out); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Done! Next steps:")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  cd %s\n", dir)
		fmt.Fprintln(out, "  cp .env.example .env && set -a && . ./.env && set +a")
		fmt.Fprintln(out, "  guidebook serve")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Add Markdown files under guides/ and they show up in the guide list.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}

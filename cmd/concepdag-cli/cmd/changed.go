package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"concepdag/internal/application/commands"
)

var changedCmd = &cobra.Command{
	Use:   "changed",
	Short: "List records modified since the last build",
	Long: `List node records whose files changed after the last build recorded in
the build catalog. Without a previous build every record is listed.

A build always processes every record; this is informational.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := GetProject()
		catalog, err := p.Catalog()
		if err != nil {
			return err
		}

		changed, since, err := commands.NewChangedCommand(p.Source, catalog).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if since.IsZero() {
			fmt.Println("No previous build")
		} else {
			fmt.Printf("Changed since %s\n", since.Format("2006-01-02 15:04:05"))
		}
		for _, c := range changed {
			fmt.Printf("%s  %s\n", c.UCI, c.Mtime.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changedCmd)
}

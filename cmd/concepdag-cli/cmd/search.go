package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"concepdag/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search nodes",
	Long: `Search nodes by UCI, title or the configured search fields.

Results are ranked by relevance using fuzzy matching.

Examples:
  concepdag-cli search groups
  concepdag-cli search algebra/gr`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := GetProject().Analyze(cmd.Context())
		if err != nil {
			return err
		}

		results, err := commands.NewSearchCommand(res.Search, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			fmt.Printf("%s  %s  %s\n", r.UCI, r.Title, r.URL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

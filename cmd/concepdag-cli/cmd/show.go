package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"concepdag/internal/application/commands"
)

var showCmd = &cobra.Command{
	Use:   "show <uci>",
	Short: "Print the render context of a node",
	Long: `Print the render context of a node as JSON: status, graph metrics,
grouped deps with their reasons, rdeps and metadata.

With --cached the node is read from the catalog of the last build instead:
its stored metrics and direct dependency edges, without reading any record.

Examples:
  concepdag-cli show /math/algebra/groups
  concepdag-cli show --cached /math/algebra/groups`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out any
		if useCache(cmd) {
			catalog, err := GetProject().Catalog()
			if err != nil {
				return err
			}
			node, err := commands.NewCachedNodeCommand(catalog, args[0]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			out = node
		} else {
			res, err := GetProject().Analyze(cmd.Context())
			if err != nil {
				return err
			}
			nodeCtx, err := commands.NewShowNodeCommand(res, args[0]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			out = nodeCtx
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		return enc.Encode(out)
	},
}

func init() {
	addCachedFlag(showCmd)
	rootCmd.AddCommand(showCmd)
}

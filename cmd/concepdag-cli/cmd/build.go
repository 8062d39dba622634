package cmd

import (
	"github.com/spf13/cobra"
)

var (
	noCatalog bool
	noGraph   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build every site artifact",
	Long: `Read all node records, link them into the dependency graph and write
the render contexts, site index, broken deps, cycles, processing order,
search corpus and graph description.

The build catalog is refreshed and stamped with the run time. The graph
image is rendered when Graphviz is installed.

Examples:
  concepdag-cli build
  concepdag-cli build --no-graph -p ~/sites/notes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := GetProject().Build(cmd.Context(), !noCatalog, !noGraph)
		return err
	},
}

func init() {
	buildCmd.Flags().BoolVar(&noCatalog, "no-catalog", false, "do not update the build catalog")
	buildCmd.Flags().BoolVar(&noGraph, "no-graph", false, "do not write the graph description or image")
	rootCmd.AddCommand(buildCmd)
}

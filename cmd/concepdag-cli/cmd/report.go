package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"concepdag/internal/application/commands"
	"concepdag/internal/domain"
)

func addCachedFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("cached", false, "read the results of the last build from the catalog")
}

func useCache(cmd *cobra.Command) bool {
	cached, _ := cmd.Flags().GetBool("cached")
	return cached
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "List nodes in processing order",
	Long: `List nodes in processing order: every node comes after the nodes it
depends on, except between members of the same cycle.

Use --all to include referenced nodes that have no record, and --cached
to list the order of the last build without reading the records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		var order []string
		if useCache(cmd) {
			catalog, err := GetProject().Catalog()
			if err != nil {
				return err
			}
			order, err = commands.NewCachedOrderCommand(catalog, all).Execute(cmd.Context())
			if err != nil {
				return err
			}
		} else {
			res, err := GetProject().Analyze(cmd.Context())
			if err != nil {
				return err
			}
			order = res.Analysis.RecordOrder
			if all {
				order = res.Analysis.Order
			}
		}

		for _, uci := range order {
			fmt.Println(uci)
		}
		return nil
	},
}

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "List groups of nodes that depend on each other",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cycles *domain.CycleReport
		if useCache(cmd) {
			catalog, err := GetProject().Catalog()
			if err != nil {
				return err
			}
			cycles, err = commands.NewCachedCyclesCommand(catalog).Execute(cmd.Context())
			if err != nil {
				return err
			}
		} else {
			res, err := GetProject().Analyze(cmd.Context())
			if err != nil {
				return err
			}
			cycles = res.Analysis.Cycles
		}

		if cycles.Len() == 0 {
			fmt.Println("No cycles")
			return nil
		}
		for pair := cycles.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Printf("%d: %s\n", pair.Key, strings.Join(pair.Value, " "))
		}
		return nil
	},
}

var brokenCmd = &cobra.Command{
	Use:   "broken",
	Short: "List referenced nodes that have no record",
	RunE: func(cmd *cobra.Command, args []string) error {
		var broken *domain.BrokenDeps
		if useCache(cmd) {
			catalog, err := GetProject().Catalog()
			if err != nil {
				return err
			}
			broken, err = commands.NewCachedBrokenCommand(catalog).Execute(cmd.Context())
			if err != nil {
				return err
			}
		} else {
			res, err := GetProject().Analyze(cmd.Context())
			if err != nil {
				return err
			}
			broken = res.Broken
		}

		if broken.Len() == 0 {
			fmt.Println("No broken dependencies")
			return nil
		}
		for pair := broken.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Printf("%s  <- %s\n", pair.Key, strings.Join(pair.Value, ", "))
		}
		return nil
	},
}

func init() {
	orderCmd.Flags().Bool("all", false, "include referenced nodes without a record")
	for _, c := range []*cobra.Command{orderCmd, cyclesCmd, brokenCmd} {
		addCachedFlag(c)
	}
	rootCmd.AddCommand(orderCmd, cyclesCmd, brokenCmd)
}

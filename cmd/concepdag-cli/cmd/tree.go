package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"concepdag/internal/application/commands"
	"concepdag/internal/domain"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the site index as a tree",
	Long: `Display the site index: nodes grouped into sections by the segments
of their UCI, in processing order.

Example:
  concepdag-cli tree`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := GetProject()
		res, err := p.Analyze(cmd.Context())
		if err != nil {
			return err
		}
		root, err := commands.NewBuildTreeCommand(res, p.Site.Title).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(root.Name)
		for _, child := range root.Children {
			printTree(child, 1)
		}
		return nil
	},
}

func printTree(node *domain.TreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if node.IsLeaf() {
		fmt.Printf("%s%s  %s\n", indent, node.Name, node.UCI())
		return
	}
	fmt.Printf("%s%s\n", indent, node.Name)
	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

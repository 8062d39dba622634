package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"concepdag/internal/config"
	"concepdag/internal/logging"
	"concepdag/internal/project"
)

var (
	projectPath string
	logLevel    string
	proj        *project.Project
)

var rootCmd = &cobra.Command{
	Use:   "concepdag-cli",
	Short: "Build and inspect concept dependency graphs",
	Long: `concepdag-cli builds the site artifacts of a concept graph project.

Each node record under intermediate/json1 names the nodes it depends on.
The build links them into a graph, reports broken dependencies and cycles,
and writes one render context per node plus the site index, the search
corpus and a graph description.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		logger := logging.New(os.Stderr, logLevel)
		p, err := project.Open(projectPath, logger)
		if err != nil {
			return err
		}
		proj = p
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if proj == nil {
			return nil
		}
		return proj.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", config.ProjectPath(), "path to the project directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.LogLevel(), "log level (debug, info, warn, error)")
}

// GetProject returns the initialized project
func GetProject() *project.Project {
	return proj
}

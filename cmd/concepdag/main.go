package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"concepdag/internal/adapters/browser"
	"concepdag/internal/adapters/editor"
	"concepdag/internal/adapters/tui"
	"concepdag/internal/application"
	"concepdag/internal/config"
	"concepdag/internal/logging"
	"concepdag/internal/project"
)

func main() {
	projectFlag := flag.String("project", config.ProjectPath(), "path to the project directory")
	flag.Parse()

	// Log output would corrupt the alternate screen
	p, err := project.Open(*projectFlag, logging.Discard())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	load := func(ctx context.Context, rebuild bool) (*application.BuildResult, error) {
		if rebuild {
			return p.Build(ctx, true, true)
		}
		return p.Analyze(ctx)
	}

	app := tui.NewApp(
		p.Site.Title,
		load,
		p.Source.RecordPath,
		editor.NewOpener(),
		browser.NewOpener(p.Layout.OutputDir()),
	)

	prog := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

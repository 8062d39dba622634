// Package project wires the adapters of one project directory together.
package project

import (
	"context"
	"fmt"
	"sync"

	"concepdag/internal/adapters/filesystem"
	"concepdag/internal/adapters/graphviz"
	"concepdag/internal/adapters/sqlite"
	"concepdag/internal/application"
	"concepdag/internal/application/commands"
	"concepdag/internal/config"
	"concepdag/internal/ports"

	"github.com/charmbracelet/log"
)

// Project holds the adapters serving one project directory
type Project struct {
	Layout   filesystem.Layout
	Site     *config.Site
	Source   *filesystem.RecordSource
	Store    *filesystem.ArtifactWriter
	Renderer *graphviz.Renderer
	Logger   *log.Logger

	mu      sync.Mutex // guards catalog
	catalog *sqlite.Catalog

	// buildMu serializes builds; they share the output directory
	buildMu sync.Mutex
}

// Open loads the site config of the project at path. The catalog is
// opened lazily by Catalog.
func Open(path string, logger *log.Logger) (*Project, error) {
	layout := filesystem.NewLayout(path)
	site, err := config.LoadSite(layout.InputDir())
	if err != nil {
		return nil, err
	}
	logger.Debug("project opened", "root", layout.Root, "site", site.Name)
	return &Project{
		Layout:   layout,
		Site:     site,
		Source:   filesystem.NewRecordSource(layout),
		Store:    filesystem.NewArtifactWriter(layout),
		Renderer: graphviz.NewRenderer(layout.GraphDOTPath(), layout.GraphImagePath()),
		Logger:   logger,
	}, nil
}

// Options derives the build options from the site config
func (p *Project) Options() application.Options {
	return application.Options{
		SiteURL:        p.Site.SiteURL,
		SearchFields:   p.Site.SearchFields,
		TransitiveDeps: p.Site.Transitive(),
		Logger:         p.Logger,
	}
}

// Catalog opens the build catalog on first use
func (p *Project) Catalog() (*sqlite.Catalog, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.catalog != nil {
		return p.catalog, nil
	}
	c := sqlite.NewCatalog()
	if err := c.Open(p.Layout.Root); err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	p.catalog = c
	return c, nil
}

// Close releases the catalog
func (p *Project) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.catalog == nil {
		return nil
	}
	err := p.catalog.Close()
	p.catalog = nil
	return err
}

// Analyze builds every derived structure in memory without writing anything
func (p *Project) Analyze(ctx context.Context) (*application.BuildResult, error) {
	return commands.NewAnalyzeCommand(p.Source, p.Options()).Execute(ctx)
}

// Build runs a full build. With withCatalog false the catalog is not
// touched; with render false no graph description is written.
func (p *Project) Build(ctx context.Context, withCatalog, render bool) (*application.BuildResult, error) {
	p.buildMu.Lock()
	defer p.buildMu.Unlock()

	var catalog ports.BuildCatalog
	if withCatalog {
		c, err := p.Catalog()
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	var renderer ports.GraphRenderer
	if render {
		renderer = p.Renderer
	}
	return commands.NewBuildCommand(p.Source, p.Store, catalog, renderer, p.Logger, p.Options()).Execute(ctx)
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"concepdag/internal/application"
	"concepdag/internal/domain"
	"concepdag/internal/ports"

	"github.com/charmbracelet/log"
)

// AnalyzeCommand reads all records and builds every derived structure in memory
type AnalyzeCommand struct {
	source  ports.NodeSource
	Options application.Options
}

// NewAnalyzeCommand creates a new AnalyzeCommand
func NewAnalyzeCommand(source ports.NodeSource, opts application.Options) *AnalyzeCommand {
	return &AnalyzeCommand{
		source:  source,
		Options: opts,
	}
}

// Execute runs the analyze command
func (c *AnalyzeCommand) Execute(ctx context.Context) (*application.BuildResult, error) {
	records, err := c.source.ReadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return application.Build(records, c.Options)
}

// BuildCommand runs a full build and persists every artifact.
// The catalog and the graph renderer are optional.
type BuildCommand struct {
	source   ports.NodeSource
	store    ports.ArtifactStore
	catalog  ports.BuildCatalog
	renderer ports.GraphRenderer
	logger   *log.Logger
	Options  application.Options
}

// NewBuildCommand creates a new BuildCommand
func NewBuildCommand(
	source ports.NodeSource,
	store ports.ArtifactStore,
	catalog ports.BuildCatalog,
	renderer ports.GraphRenderer,
	logger *log.Logger,
	opts application.Options,
) *BuildCommand {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}
	return &BuildCommand{
		source:   source,
		store:    store,
		catalog:  catalog,
		renderer: renderer,
		logger:   logger,
		Options:  opts,
	}
}

// Execute runs the build command
func (c *BuildCommand) Execute(ctx context.Context) (*application.BuildResult, error) {
	// Taken before reading so edits made during the build count as changed next time
	startedAt := time.Now()

	res, err := NewAnalyzeCommand(c.source, c.Options).Execute(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.writeArtifacts(res); err != nil {
		return nil, err
	}

	if c.catalog != nil {
		if err := SyncCatalog(c.catalog, res, startedAt); err != nil {
			return nil, fmt.Errorf("failed to update catalog: %w", err)
		}
	}

	if c.renderer != nil {
		c.renderGraph(ctx, res)
	}

	c.logger.Info("build complete",
		"records", res.Stats.Records,
		"vertices", res.Stats.Vertices,
		"edges", res.Stats.Edges,
		"broken", res.Stats.Broken,
		"cycles", res.Stats.Cycles,
		"duration", res.Stats.Duration,
	)
	return res, nil
}

func (c *BuildCommand) writeArtifacts(res *application.BuildResult) error {
	if err := c.store.Prepare(); err != nil {
		return fmt.Errorf("failed to prepare output: %w", err)
	}
	for pair := res.Contexts.Oldest(); pair != nil; pair = pair.Next() {
		if err := c.store.WriteContext(pair.Key, pair.Value); err != nil {
			return fmt.Errorf("failed to write context for %s: %w", pair.Key, err)
		}
	}
	if err := c.store.WriteIndex(res.Index); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	if err := c.store.WriteBrokenDeps(res.Broken); err != nil {
		return fmt.Errorf("failed to write broken deps: %w", err)
	}
	if err := c.store.WriteCycles(res.Analysis.Cycles); err != nil {
		return fmt.Errorf("failed to write cycles: %w", err)
	}
	if err := c.store.WriteTopoOrder(res.Analysis.Order); err != nil {
		return fmt.Errorf("failed to write topo order: %w", err)
	}
	if err := c.store.WriteSearch(res.Search); err != nil {
		return fmt.Errorf("failed to write search corpus: %w", err)
	}
	return nil
}

// renderGraph is best effort: failures are logged and the build goes on
func (c *BuildCommand) renderGraph(ctx context.Context, res *application.BuildResult) {
	if err := c.renderer.WriteDescription(res.Graph, res.Records); err != nil {
		c.logger.Warn("could not write graph description", "err", err)
		return
	}
	err := c.renderer.RenderImage(ctx)
	switch {
	case errors.Is(err, ports.ErrRendererUnavailable):
		c.logger.Warn("graph image skipped", "reason", err)
	case err != nil:
		c.logger.Warn("graph image failed", "err", err)
	}
}

// SyncCatalog replaces the catalog contents with the vertices, edges and
// diagnostics of res and stamps startedAt as the run time.
func SyncCatalog(catalog ports.BuildCatalog, res *application.BuildResult, startedAt time.Time) error {
	tx, err := catalog.BeginTx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.Reset(); err != nil {
		return err
	}

	for _, uci := range res.Analysis.Order {
		node, err := catalogNode(res, uci)
		if err != nil {
			return err
		}
		if err := tx.InsertNode(node); err != nil {
			return err
		}
	}

	for _, e := range res.Graph.Edges() {
		edge := &domain.CatalogEdge{From: e.From, To: e.To}
		if e.Reason != nil {
			edge.Reason = *e.Reason
		}
		if err := tx.InsertEdge(edge); err != nil {
			return err
		}
	}

	for pair := res.Broken.Oldest(); pair != nil; pair = pair.Next() {
		for _, ref := range pair.Value {
			if err := tx.InsertBrokenDep(pair.Key, ref); err != nil {
				return err
			}
		}
	}

	for pair := res.Analysis.Cycles.Oldest(); pair != nil; pair = pair.Next() {
		for _, uci := range pair.Value {
			if err := tx.InsertCycleMember(pair.Key, uci); err != nil {
				return err
			}
		}
	}

	if err := tx.SetLastRun(startedAt); err != nil {
		return err
	}
	return tx.Commit()
}

func catalogNode(res *application.BuildResult, uci string) (*domain.CatalogNode, error) {
	m, err := application.Metrics(res.Graph, uci)
	if err != nil {
		return nil, &application.InvariantError{Stage: "catalog", Err: err}
	}
	node := &domain.CatalogNode{
		UCI:       uci,
		Depth:     deref(m.Depth),
		TopoOrder: deref(m.TopoOrder),
		NDeps:     deref(m.NDeps),
		NRdeps:    deref(m.NRdeps),
		NTdeps:    deref(m.NTdeps),
		NTrdeps:   deref(m.NTrdeps),
	}
	if rec, ok := res.Records.Get(uci); ok {
		node.HasRecord = true
		node.Status = rec.Status
		node.DepsStatus = rec.DepsStatus
		if title, ok := rec.Metadata.Get("title"); ok {
			node.Title = application.Stringify(title)
		}
	}
	return node, nil
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

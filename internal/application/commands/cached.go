package commands

import (
	"context"
	"time"

	"concepdag/internal/application"
	"concepdag/internal/domain"
	"concepdag/internal/ports"
)

// lastBuild returns the run time of the last build recorded in catalog.
// A missing catalog, one written by another schema or project, or one
// without a committed build yields ErrNoCachedBuild.
func lastBuild(catalog ports.BuildCatalog) (time.Time, error) {
	if catalog == nil || catalog.NeedsFullRebuild() {
		return time.Time{}, application.ErrNoCachedBuild
	}
	last, ok, err := catalog.LastRun()
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, application.ErrNoCachedBuild
	}
	return last, nil
}

// CachedNodeCommand looks up a node and its direct edges in the catalog
type CachedNodeCommand struct {
	catalog ports.BuildCatalog
	UCI     string
}

// NewCachedNodeCommand creates a new CachedNodeCommand
func NewCachedNodeCommand(catalog ports.BuildCatalog, uci string) *CachedNodeCommand {
	return &CachedNodeCommand{
		catalog: catalog,
		UCI:     uci,
	}
}

// Validate checks the command parameters
func (c *CachedNodeCommand) Validate() error {
	return application.ValidateUCI("uci", c.UCI)
}

// Execute runs the cached node command
func (c *CachedNodeCommand) Execute(ctx context.Context) (*domain.CachedNode, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	builtAt, err := lastBuild(c.catalog)
	if err != nil {
		return nil, err
	}

	node, err := c.catalog.GetNode(c.UCI)
	if err != nil {
		return nil, err
	}
	if node == nil || !node.HasRecord {
		return nil, &application.NodeNotFoundError{UCI: c.UCI}
	}

	deps, err := c.catalog.FindDependencies(c.UCI)
	if err != nil {
		return nil, err
	}
	rdeps, err := c.catalog.FindDependents(c.UCI)
	if err != nil {
		return nil, err
	}
	return &domain.CachedNode{
		Node:         *node,
		Dependencies: deps,
		Dependents:   rdeps,
		BuiltAt:      builtAt,
	}, nil
}

// CachedOrderCommand lists the processing order of the last build
type CachedOrderCommand struct {
	catalog ports.BuildCatalog
	All     bool // include referenced nodes without a record
}

// NewCachedOrderCommand creates a new CachedOrderCommand
func NewCachedOrderCommand(catalog ports.BuildCatalog, all bool) *CachedOrderCommand {
	return &CachedOrderCommand{
		catalog: catalog,
		All:     all,
	}
}

// Execute runs the cached order command
func (c *CachedOrderCommand) Execute(ctx context.Context) ([]string, error) {
	if _, err := lastBuild(c.catalog); err != nil {
		return nil, err
	}
	nodes, err := c.catalog.ListNodes()
	if err != nil {
		return nil, err
	}
	order := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.HasRecord || c.All {
			order = append(order, n.UCI)
		}
	}
	return order, nil
}

// CachedCyclesCommand lists the cycles found by the last build
type CachedCyclesCommand struct {
	catalog ports.BuildCatalog
}

// NewCachedCyclesCommand creates a new CachedCyclesCommand
func NewCachedCyclesCommand(catalog ports.BuildCatalog) *CachedCyclesCommand {
	return &CachedCyclesCommand{catalog: catalog}
}

// Execute runs the cached cycles command
func (c *CachedCyclesCommand) Execute(ctx context.Context) (*domain.CycleReport, error) {
	if _, err := lastBuild(c.catalog); err != nil {
		return nil, err
	}
	return c.catalog.ListCycles()
}

// CachedBrokenCommand lists the broken dependencies found by the last build
type CachedBrokenCommand struct {
	catalog ports.BuildCatalog
}

// NewCachedBrokenCommand creates a new CachedBrokenCommand
func NewCachedBrokenCommand(catalog ports.BuildCatalog) *CachedBrokenCommand {
	return &CachedBrokenCommand{catalog: catalog}
}

// Execute runs the cached broken command
func (c *CachedBrokenCommand) Execute(ctx context.Context) (*domain.BrokenDeps, error) {
	if _, err := lastBuild(c.catalog); err != nil {
		return nil, err
	}
	return c.catalog.ListBrokenDeps()
}

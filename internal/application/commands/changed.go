package commands

import (
	"context"
	"errors"
	"time"

	"concepdag/internal/application"
	"concepdag/internal/domain"
	"concepdag/internal/ports"
)

// ChangedCommand lists record files modified since the last build.
// Without a usable catalog or a previous run every record counts as changed.
type ChangedCommand struct {
	source  ports.NodeSource
	catalog ports.BuildCatalog
}

// NewChangedCommand creates a new ChangedCommand
func NewChangedCommand(source ports.NodeSource, catalog ports.BuildCatalog) *ChangedCommand {
	return &ChangedCommand{
		source:  source,
		catalog: catalog,
	}
}

// Execute runs the changed command
func (c *ChangedCommand) Execute(ctx context.Context) ([]domain.ChangedRecord, time.Time, error) {
	since, err := lastBuild(c.catalog)
	if err != nil && !errors.Is(err, application.ErrNoCachedBuild) {
		return nil, time.Time{}, err
	}
	changed, err := c.source.ChangedSince(since)
	return changed, since, err
}

package ports

import (
	"context"
	"errors"

	"concepdag/internal/domain"
	"concepdag/internal/graph"
)

// ErrRendererUnavailable is returned when the layout tool is not installed
var ErrRendererUnavailable = errors.New("graph renderer unavailable")

// GraphRenderer writes a textual description of the dependency graph and
// optionally lays it out as an image
type GraphRenderer interface {
	// WriteDescription writes the graph description file
	WriteDescription(g *graph.Graph, records *domain.NodeSet) error

	// RenderImage lays out the description written last.
	// Returns ErrRendererUnavailable if the layout tool is missing.
	RenderImage(ctx context.Context) error
}

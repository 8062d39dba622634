package application

import (
	"time"

	"concepdag/internal/domain"
	"concepdag/internal/graph"

	"github.com/charmbracelet/log"
)

// Options controls an in-memory build
type Options struct {
	SiteURL        *string  // nil: URLs relative to the site root
	SearchFields   []string // nil: emit a "search" blob per record
	TransitiveDeps bool     // include tdeps in render contexts
	Logger         *log.Logger
}

// BuildResult holds everything derived from one set of records
type BuildResult struct {
	Graph      *graph.Graph
	Records    *domain.NodeSet // in processing order
	Broken     *domain.BrokenDeps
	Analysis   *Analysis
	Contexts   *Contexts
	Index      *domain.IndexTree
	Search     *domain.SearchCorpus
	Collisions []*domain.IndexCollisionError
	Stats      domain.BuildStats
}

// Build runs link, resolve, contexts, index and search over records.
// It performs no I/O. Broken dependencies, cycles and index collisions are
// reported in the result; only internal invariant failures return an error.
func Build(records *domain.NodeSet, opts Options) (*BuildResult, error) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	g, broken := Link(records)
	logger.Debug("linked", "vertices", g.Len(), "edges", len(g.Edges()), "broken", broken.Len())

	analysis := Resolve(g, records)
	logger.Debug("resolved", "components", len(analysis.Components), "cycles", analysis.Cycles.Len())
	ordered := analysis.Reorder(records)

	contexts, err := NewContextBuilder(g, ordered, opts.SiteURL, opts.TransitiveDeps).BuildAll(analysis.RecordOrder)
	if err != nil {
		return nil, err
	}

	index, collisions, err := BuildIndexTree(g, ordered, analysis.RecordOrder, opts.SiteURL)
	if err != nil {
		return nil, err
	}
	for _, c := range collisions {
		logger.Warn("index collision", "uci", c.UCI, "segment", c.Segment)
	}

	search := BuildSearchCorpus(ordered, analysis.RecordOrder, opts.SiteURL, opts.SearchFields)

	for pair := broken.Oldest(); pair != nil; pair = pair.Next() {
		logger.Warn("broken dependency", "missing", pair.Key, "referenced_by", pair.Value)
	}
	for pair := analysis.Cycles.Oldest(); pair != nil; pair = pair.Next() {
		logger.Warn("dependency cycle", "component", pair.Key, "members", pair.Value)
	}

	return &BuildResult{
		Graph:      g,
		Records:    ordered,
		Broken:     broken,
		Analysis:   analysis,
		Contexts:   contexts,
		Index:      index,
		Search:     search,
		Collisions: collisions,
		Stats: domain.BuildStats{
			Records:    ordered.Len(),
			Vertices:   g.Len(),
			Edges:      len(g.Edges()),
			Broken:     broken.Len(),
			Cycles:     analysis.Cycles.Len(),
			Collisions: len(collisions),
			Duration:   time.Since(start),
		},
	}, nil
}

// Context returns the render context of uci
func (r *BuildResult) Context(uci string) (*domain.NodeContext, error) {
	ctx, ok := r.Contexts.Get(uci)
	if !ok {
		return nil, &NodeNotFoundError{UCI: uci}
	}
	return ctx, nil
}

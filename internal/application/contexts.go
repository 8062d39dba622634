package application

import (
	"concepdag/internal/domain"
	"concepdag/internal/graph"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Contexts holds render contexts keyed by UCI, in processing order
type Contexts = orderedmap.OrderedMap[string, *domain.NodeContext]

// ContextBuilder assembles render contexts from an analyzed graph
type ContextBuilder struct {
	graph      *graph.Graph
	records    *domain.NodeSet
	siteURL    *string
	transitive bool
}

// NewContextBuilder creates a builder. g must have been resolved.
func NewContextBuilder(g *graph.Graph, records *domain.NodeSet, siteURL *string, transitive bool) *ContextBuilder {
	return &ContextBuilder{
		graph:      g,
		records:    records,
		siteURL:    siteURL,
		transitive: transitive,
	}
}

// BuildAll returns the contexts of every UCI in order
func (b *ContextBuilder) BuildAll(order []string) (*Contexts, error) {
	out := orderedmap.New[string, *domain.NodeContext]()
	for _, uci := range order {
		ctx, err := b.Build(uci)
		if err != nil {
			return nil, err
		}
		out.Set(uci, ctx)
	}
	return out, nil
}

// Build returns the render context of one node that has a record
func (b *ContextBuilder) Build(uci string) (*domain.NodeContext, error) {
	rec, ok := b.records.Get(uci)
	if !ok {
		return nil, &NodeNotFoundError{UCI: uci}
	}

	metrics, err := Metrics(b.graph, uci)
	if err != nil {
		return nil, invariant("context", err)
	}

	ctx := &domain.NodeContext{
		UCI:          uci,
		Status:       rec.Status,
		DepsStatus:   rec.DepsStatus,
		GraphMetrics: metrics,
		Deps:         make([][]domain.DepContext, 0, len(rec.Deps)),
		Metadata:     rec.Metadata,
	}

	for _, group := range rec.Deps {
		entries := make([]domain.DepContext, 0, group.Len())
		for pair := group.Oldest(); pair != nil; pair = pair.Next() {
			dc, err := b.depContext(pair.Key, pair.Value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, dc)
		}
		ctx.Deps = append(ctx.Deps, entries)
	}

	rdeps, err := b.graph.AdjacentOf(uci)
	if err != nil {
		return nil, invariant("context", err)
	}
	ctx.Rdeps = make([]domain.DepContext, 0, rdeps.Len())
	for pair := rdeps.Oldest(); pair != nil; pair = pair.Next() {
		dc, err := b.depContext(pair.Key, nil)
		if err != nil {
			return nil, err
		}
		ctx.Rdeps = append(ctx.Rdeps, dc)
	}

	if b.transitive {
		tdeps, err := b.graph.TransitiveReverseAdjOf(uci)
		if err != nil {
			return nil, invariant("context", err)
		}
		ctx.Tdeps = make([]domain.DepContext, 0, len(tdeps))
		for _, dep := range tdeps {
			if dep == uci {
				continue
			}
			dc, err := b.depContext(dep, nil)
			if err != nil {
				return nil, err
			}
			ctx.Tdeps = append(ctx.Tdeps, dc)
		}
	}

	if b.siteURL == nil {
		rel := domain.RelativeSiteURL(uci)
		ctx.SiteURL = &rel
	}
	return ctx, nil
}

// depContext describes a referenced node. A reference without a record
// gets exists=false and no derived fields.
func (b *ContextBuilder) depContext(uci string, reason *string) (domain.DepContext, error) {
	dc := domain.DepContext{UCI: uci, Reason: reason}
	rec, ok := b.records.Get(uci)
	if !ok {
		return dc, nil
	}
	metrics, err := Metrics(b.graph, uci)
	if err != nil {
		return dc, invariant("context", err)
	}
	status, depsStatus := rec.Status, rec.DepsStatus
	dc.Exists = true
	dc.Status = &status
	dc.DepsStatus = &depsStatus
	dc.GraphMetrics = metrics
	dc.Metadata = rec.Metadata
	return dc, nil
}

// Metrics collects the published graph numbers of uci
func Metrics(g *graph.Graph, uci string) (domain.GraphMetrics, error) {
	var m domain.GraphMetrics
	deg, err := g.DegreesOf(uci)
	if err != nil {
		return m, err
	}
	if m.Depth, err = g.DepthOf(uci); err != nil {
		return m, err
	}
	if m.TopoOrder, err = g.TopoOrderOf(uci); err != nil {
		return m, err
	}
	in, out := deg.In, deg.Out
	m.NDeps = &in
	m.NRdeps = &out
	m.NTdeps = deg.TransitiveIn
	m.NTrdeps = deg.TransitiveOut
	return m, nil
}

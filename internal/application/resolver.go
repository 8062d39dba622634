package application

import (
	"concepdag/internal/domain"
	"concepdag/internal/graph"
)

// Analysis is the result of ordering the graph
type Analysis struct {
	// Components in discovery order; a component's index is its topo order
	Components [][]string
	// Cycles lists every component with more than one member
	Cycles *domain.CycleReport
	// Order is every vertex, components concatenated in discovery order
	Order []string
	// RecordOrder is Order restricted to UCIs that have a record
	RecordOrder []string
}

// Resolve computes components, depth, topo order and transitive closure on g
// and derives the processing order for records.
func Resolve(g *graph.Graph, records *domain.NodeSet) *Analysis {
	components := g.StronglyConnectedComponents()
	g.TransitiveClosure()

	a := &Analysis{
		Components:  components,
		Cycles:      domain.NewCycleReport(),
		Order:       make([]string, 0, g.Len()),
		RecordOrder: make([]string, 0, records.Len()),
	}
	for i, comp := range components {
		if len(comp) > 1 {
			a.Cycles.Set(i, comp)
		}
		for _, uci := range comp {
			a.Order = append(a.Order, uci)
			if _, ok := records.Get(uci); ok {
				a.RecordOrder = append(a.RecordOrder, uci)
			}
		}
	}
	return a
}

// Reorder returns the records in processing order
func (a *Analysis) Reorder(records *domain.NodeSet) *domain.NodeSet {
	out := domain.NewNodeSet()
	for _, uci := range a.RecordOrder {
		rec, _ := records.Get(uci)
		out.Set(uci, rec)
	}
	return out
}

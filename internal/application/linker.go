package application

import (
	"concepdag/internal/domain"
	"concepdag/internal/graph"
)

// Link builds the dependency graph from the node records.
//
// Every record becomes a vertex in record order. Then every declared
// dependency becomes an edge dependency -> dependent, which also adds a
// vertex for targets that have no record. Those targets are collected in the
// broken-deps report together with the nodes that reference them.
func Link(records *domain.NodeSet) (*graph.Graph, *domain.BrokenDeps) {
	g := graph.New()
	for pair := records.Oldest(); pair != nil; pair = pair.Next() {
		g.AddVertex(pair.Key)
	}

	broken := domain.NewBrokenDeps()
	for pair := records.Oldest(); pair != nil; pair = pair.Next() {
		uci, rec := pair.Key, pair.Value
		for _, group := range rec.Deps {
			for dep := group.Oldest(); dep != nil; dep = dep.Next() {
				target := dep.Key
				g.AddEdge(target, uci, dep.Value)
				if _, ok := records.Get(target); !ok {
					refs, _ := broken.Get(target)
					broken.Set(target, append(refs, uci))
				}
			}
		}
	}
	return g, broken
}

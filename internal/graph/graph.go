// Package graph implements the directed dependency graph behind a site build.
//
// Vertices are opaque string labels (UCIs) mapped to dense integer indices.
// An edge runs from a dependency to its dependent, so adj[v] lists the nodes
// that depend on v and radj[v] lists the nodes v depends on.
//
// The graph is built by repeated insertion and then analyzed once:
// StronglyConnectedComponents fills depth and topo order, TransitiveClosure
// fills the reachability sets. Accessors for derived data return nil until
// the corresponding analysis has run.
//
// A Graph is not safe for concurrent mutation. Once analysis is complete it
// may be read from multiple goroutines.
package graph

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Neighbors maps a neighbor label to the optional reason of the connecting edge,
// in edge insertion order.
type Neighbors = orderedmap.OrderedMap[string, *string]

type edgeKey struct {
	from, to int
}

// Edge is one inserted edge, as returned by Edges
type Edge struct {
	From   string
	To     string
	Reason *string
}

// Degrees holds direct and transitive degree counts of a vertex.
// The transitive counts exclude the vertex itself and are nil until
// TransitiveClosure has run.
type Degrees struct {
	In            int
	Out           int
	TransitiveIn  *int
	TransitiveOut *int
}

// Graph is an arena-style directed graph keyed by string labels.
type Graph struct {
	labelToIndex map[string]int
	indexToLabel []string
	adj          [][]int
	radj         [][]int
	edgeLabels   map[edgeKey]string
	edgeOrder    []edgeKey

	// populated by StronglyConnectedComponents
	topoOrder []int
	depth     []int

	// populated by TransitiveClosure
	tadj  [][]int
	tradj [][]int
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		labelToIndex: make(map[string]int),
		edgeLabels:   make(map[edgeKey]string),
	}
}

// AddVertex registers label, assigning the next free index on first sight.
// Adding an existing label is a no-op.
func (g *Graph) AddVertex(label string) {
	if _, ok := g.labelToIndex[label]; ok {
		return
	}
	g.labelToIndex[label] = len(g.indexToLabel)
	g.indexToLabel = append(g.indexToLabel, label)
	g.adj = append(g.adj, nil)
	g.radj = append(g.radj, nil)
}

// AddEdge inserts an edge from -> to, adding both endpoints if needed.
// Parallel edges are kept in the adjacency lists. A non-nil reason replaces
// any label stored for the pair; a nil reason leaves it untouched.
func (g *Graph) AddEdge(from, to string, reason *string) {
	g.AddVertex(from)
	g.AddVertex(to)
	u := g.labelToIndex[from]
	v := g.labelToIndex[to]
	g.adj[u] = append(g.adj[u], v)
	g.radj[v] = append(g.radj[v], u)
	key := edgeKey{u, v}
	g.edgeOrder = append(g.edgeOrder, key)
	if reason != nil {
		g.edgeLabels[key] = *reason
	}
}

// Len returns the number of vertices
func (g *Graph) Len() int {
	return len(g.indexToLabel)
}

// HasVertex reports whether label was added
func (g *Graph) HasVertex(label string) bool {
	_, ok := g.labelToIndex[label]
	return ok
}

// Labels returns all vertex labels in insertion order
func (g *Graph) Labels() []string {
	out := make([]string, len(g.indexToLabel))
	copy(out, g.indexToLabel)
	return out
}

// Edges returns every inserted edge in insertion order, duplicates included.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		out = append(out, Edge{
			From:   g.indexToLabel[key.from],
			To:     g.indexToLabel[key.to],
			Reason: g.reason(key.from, key.to),
		})
	}
	return out
}

// AdjacentOf returns the vertices that depend on label (its dependents).
func (g *Graph) AdjacentOf(label string) (*Neighbors, error) {
	u, err := g.index(label)
	if err != nil {
		return nil, err
	}
	res := orderedmap.New[string, *string]()
	for _, v := range g.adj[u] {
		res.Set(g.indexToLabel[v], g.reason(u, v))
	}
	return res, nil
}

// ReverseAdjacentOf returns the vertices label depends on.
func (g *Graph) ReverseAdjacentOf(label string) (*Neighbors, error) {
	v, err := g.index(label)
	if err != nil {
		return nil, err
	}
	res := orderedmap.New[string, *string]()
	for _, u := range g.radj[v] {
		res.Set(g.indexToLabel[u], g.reason(u, v))
	}
	return res, nil
}

// DegreesOf returns the direct and transitive degrees of label.
func (g *Graph) DegreesOf(label string) (Degrees, error) {
	v, err := g.index(label)
	if err != nil {
		return Degrees{}, err
	}
	d := Degrees{
		In:  len(g.radj[v]),
		Out: len(g.adj[v]),
	}
	if g.tadj != nil {
		tin := len(g.tradj[v]) - 1
		tout := len(g.tadj[v]) - 1
		d.TransitiveIn = &tin
		d.TransitiveOut = &tout
	}
	return d, nil
}

// DepthOf returns the depth of label's component, or nil before analysis.
func (g *Graph) DepthOf(label string) (*int, error) {
	v, err := g.index(label)
	if err != nil {
		return nil, err
	}
	if g.depth == nil {
		return nil, nil
	}
	d := g.depth[v]
	return &d, nil
}

// TopoOrderOf returns the rank of label's component, or nil before analysis.
func (g *Graph) TopoOrderOf(label string) (*int, error) {
	v, err := g.index(label)
	if err != nil {
		return nil, err
	}
	if g.topoOrder == nil {
		return nil, nil
	}
	t := g.topoOrder[v]
	return &t, nil
}

// TransitiveAdjOf returns every vertex reachable from label over adj,
// label included, or nil before TransitiveClosure.
func (g *Graph) TransitiveAdjOf(label string) ([]string, error) {
	v, err := g.index(label)
	if err != nil {
		return nil, err
	}
	if g.tadj == nil {
		return nil, nil
	}
	return g.labels(g.tadj[v]), nil
}

// TransitiveReverseAdjOf returns every vertex reachable from label over radj,
// label included, or nil before TransitiveClosure. When topo order is known
// the result is in build order.
func (g *Graph) TransitiveReverseAdjOf(label string) ([]string, error) {
	v, err := g.index(label)
	if err != nil {
		return nil, err
	}
	if g.tradj == nil {
		return nil, nil
	}
	return g.labels(g.tradj[v]), nil
}

func (g *Graph) index(label string) (int, error) {
	i, ok := g.labelToIndex[label]
	if !ok {
		return 0, &VertexNotFoundError{Label: label}
	}
	return i, nil
}

func (g *Graph) reason(u, v int) *string {
	if r, ok := g.edgeLabels[edgeKey{u, v}]; ok {
		return &r
	}
	return nil
}

func (g *Graph) labels(idx []int) []string {
	out := make([]string, len(idx))
	for i, v := range idx {
		out[i] = g.indexToLabel[v]
	}
	return out
}

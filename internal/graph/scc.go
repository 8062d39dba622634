package graph

// frame is one level of an explicit DFS stack: the vertex and the position
// of the next neighbor to visit.
type frame struct {
	v    int
	next int
}

// StronglyConnectedComponents decomposes the graph with Kosaraju's algorithm
// and returns the components as label lists in discovery order, which is a
// topological order of the condensation: dependencies come before dependents.
//
// As a side effect it assigns every vertex the rank of its component
// (TopoOrderOf) and the component depth (DepthOf). Both traversals use an
// explicit stack so deep dependency chains cannot exhaust the goroutine stack.
func (g *Graph) StronglyConnectedComponents() [][]string {
	n := g.Len()

	finished := g.finishingOrder()

	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	depth := make([]int, n)
	var compDepth []int
	var components [][]string

	stack := make([]frame, 0, 16)
	for i := n - 1; i >= 0; i-- {
		root := finished[i]
		if comp[root] != -1 {
			continue
		}
		c := len(components)
		members := []int{root}
		comp[root] = c
		stack = append(stack[:0], frame{v: root})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(g.radj[top.v]) {
				w := g.radj[top.v][top.next]
				top.next++
				if comp[w] == -1 {
					comp[w] = c
					members = append(members, w)
					stack = append(stack, frame{v: w})
				}
				continue
			}
			stack = stack[:len(stack)-1]
		}

		// Every dependency outside c was assigned to an earlier component,
		// so its depth is final.
		d := 0
		for _, u := range members {
			for _, w := range g.radj[u] {
				if cw := comp[w]; cw != c && compDepth[cw]+1 > d {
					d = compDepth[cw] + 1
				}
			}
		}
		compDepth = append(compDepth, d)

		labels := make([]string, len(members))
		for j, u := range members {
			labels[j] = g.indexToLabel[u]
			depth[u] = d
		}
		components = append(components, labels)
	}

	g.topoOrder = comp
	g.depth = depth
	return components
}

// finishingOrder runs the first Kosaraju pass over adj and returns vertices
// in the order their DFS finished. Roots are taken from the highest index
// down so that unrelated vertices come out of the second pass in insertion
// order.
func (g *Graph) finishingOrder() []int {
	n := g.Len()
	visited := make([]bool, n)
	order := make([]int, 0, n)
	stack := make([]frame, 0, 16)

	for s := n - 1; s >= 0; s-- {
		if visited[s] {
			continue
		}
		visited[s] = true
		stack = append(stack[:0], frame{v: s})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(g.adj[top.v]) {
				w := g.adj[top.v][top.next]
				top.next++
				if !visited[w] {
					visited[w] = true
					stack = append(stack, frame{v: w})
				}
				continue
			}
			order = append(order, top.v)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}

package graph

import "sort"

// TransitiveClosure computes, for every vertex, the set of vertices reachable
// over adj (transitive dependents) and over radj (transitive dependencies).
// Both sets include the vertex itself. When StronglyConnectedComponents has
// already run, each dependency set is sorted by topo order so it reads as a
// build order.
//
// Each root gets its own traversal with no sharing between roots, which is
// O(V·(V+E)). That is fine for documentation-sized corpora but does not
// scale to very large graphs.
func (g *Graph) TransitiveClosure() {
	n := g.Len()
	tadj := make([][]int, n)
	tradj := make([][]int, n)

	seen := make([]int, n)
	stamp := 0
	stack := make([]int, 0, 16)

	reach := func(root int, edges [][]int) []int {
		stamp++
		seen[root] = stamp
		out := []int{}
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			out = append(out, v)
			nb := edges[v]
			for i := len(nb) - 1; i >= 0; i-- {
				w := nb[i]
				if seen[w] != stamp {
					seen[w] = stamp
					stack = append(stack, w)
				}
			}
		}
		return out
	}

	for r := 0; r < n; r++ {
		tadj[r] = reach(r, g.adj)
		tradj[r] = reach(r, g.radj)
		if g.topoOrder != nil {
			set := tradj[r]
			sort.SliceStable(set, func(i, j int) bool {
				return g.topoOrder[set[i]] < g.topoOrder[set[j]]
			})
		}
	}

	g.tadj = tadj
	g.tradj = tradj
}

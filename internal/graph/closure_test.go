package graph

import (
	"testing"
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestTransitiveClosure(t *testing.T) {
	g := New()
	g.AddEdge("/a", "/b", nil)
	g.AddEdge("/b", "/c", nil)
	g.AddEdge("/x", "/c", nil)
	g.StronglyConnectedComponents()
	g.TransitiveClosure()

	tests := []struct {
		label   string
		wantAdj []string
		wantRev []string
	}{
		{"/a", []string{"/a", "/b", "/c"}, []string{"/a"}},
		{"/b", []string{"/b", "/c"}, []string{"/a", "/b"}},
		{"/c", []string{"/c"}, []string{"/a", "/b", "/x", "/c"}},
		{"/x", []string{"/x", "/c"}, []string{"/x"}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			fwd, err := g.TransitiveAdjOf(tt.label)
			if err != nil {
				t.Fatalf("TransitiveAdjOf() error = %v", err)
			}
			if len(fwd) != len(tt.wantAdj) {
				t.Errorf("TransitiveAdjOf(%s) = %v, want %v", tt.label, fwd, tt.wantAdj)
			}
			for _, w := range tt.wantAdj {
				if !contains(fwd, w) {
					t.Errorf("TransitiveAdjOf(%s) = %v, missing %s", tt.label, fwd, w)
				}
			}

			rev, err := g.TransitiveReverseAdjOf(tt.label)
			if err != nil {
				t.Fatalf("TransitiveReverseAdjOf() error = %v", err)
			}
			if len(rev) != len(tt.wantRev) {
				t.Errorf("TransitiveReverseAdjOf(%s) = %v, want %v", tt.label, rev, tt.wantRev)
			}
			for _, w := range tt.wantRev {
				if !contains(rev, w) {
					t.Errorf("TransitiveReverseAdjOf(%s) = %v, missing %s", tt.label, rev, w)
				}
			}
			if rev[len(rev)-1] != tt.label {
				t.Errorf("TransitiveReverseAdjOf(%s) = %v, want self last in build order", tt.label, rev)
			}
		})
	}
}

func TestClosureProperties(t *testing.T) {
	for seed := int64(7); seed < 30; seed++ {
		n := 4 + int(seed)%12
		g, _ := randomGraph(seed, n, n*2)
		g.StronglyConnectedComponents()
		g.TransitiveClosure()

		// Reference reachability by repeated relaxation.
		reach := make([][]bool, n)
		for i := range reach {
			reach[i] = make([]bool, n)
			reach[i][i] = true
		}
		for changed := true; changed; {
			changed = false
			for u := 0; u < n; u++ {
				for v := 0; v < n; v++ {
					if !reach[u][v] {
						continue
					}
					for _, w := range g.adj[v] {
						if !reach[u][w] {
							reach[u][w] = true
							changed = true
						}
					}
				}
			}
		}

		for v := 0; v < n; v++ {
			label := g.indexToLabel[v]
			fwd, _ := g.TransitiveAdjOf(label)
			rev, _ := g.TransitiveReverseAdjOf(label)

			if !contains(fwd, label) || !contains(rev, label) {
				t.Errorf("seed %d: %s missing from its own closure", seed, label)
			}
			for _, w := range g.adj[v] {
				if !contains(fwd, g.indexToLabel[w]) {
					t.Errorf("seed %d: direct dependent %s missing from TransitiveAdjOf(%s)", seed, g.indexToLabel[w], label)
				}
			}
			count := 0
			for w := 0; w < n; w++ {
				if reach[v][w] {
					count++
					if !contains(fwd, g.indexToLabel[w]) {
						t.Errorf("seed %d: %s reachable from %s but missing", seed, g.indexToLabel[w], label)
					}
				}
			}
			if count != len(fwd) {
				t.Errorf("seed %d: TransitiveAdjOf(%s) has %d entries, want %d", seed, label, len(fwd), count)
			}

			for i := 1; i < len(rev); i++ {
				a, _ := g.TopoOrderOf(rev[i-1])
				b, _ := g.TopoOrderOf(rev[i])
				if *a > *b {
					t.Errorf("seed %d: TransitiveReverseAdjOf(%s) not in topo order: %v", seed, label, rev)
					break
				}
			}

			d, _ := g.DegreesOf(label)
			if *d.TransitiveOut != len(fwd)-1 || *d.TransitiveIn != len(rev)-1 {
				t.Errorf("seed %d: DegreesOf(%s) = %+v, closure sizes %d/%d", seed, label, d, len(fwd), len(rev))
			}
		}
	}
}

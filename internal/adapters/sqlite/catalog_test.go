package sqlite

import (
	"testing"
	"time"

	"concepdag/internal/domain"
)

func openCatalog(t *testing.T) *Catalog {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	c := NewCatalog()
	if err := c.Open(t.TempDir()); err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("failed to close catalog: %v", err)
		}
	})
	return c
}

func fill(t *testing.T, c *Catalog, ts time.Time) {
	t.Helper()
	tx, err := c.BeginTx()
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Rollback()

	steps := []func() error{
		tx.Reset,
		func() error {
			return tx.InsertNode(&domain.CatalogNode{UCI: "/a", Title: "A", HasRecord: true, Status: domain.StatusOK, DepsStatus: domain.StatusOK})
		},
		func() error {
			return tx.InsertNode(&domain.CatalogNode{UCI: "/b", HasRecord: true, Status: domain.StatusOK, DepsStatus: domain.StatusOK, Depth: 1, TopoOrder: 1, NDeps: 1})
		},
		func() error { return tx.InsertNode(&domain.CatalogNode{UCI: "/ghost", TopoOrder: 2}) },
		func() error { return tx.InsertEdge(&domain.CatalogEdge{From: "/a", To: "/b", Reason: "needed"}) },
		func() error { return tx.InsertEdge(&domain.CatalogEdge{From: "/a", To: "/b"}) },
		func() error { return tx.InsertEdge(&domain.CatalogEdge{From: "/ghost", To: "/b"}) },
		func() error { return tx.InsertBrokenDep("/ghost", "/b") },
		func() error { return tx.InsertCycleMember(3, "/x") },
		func() error { return tx.InsertCycleMember(3, "/y") },
		func() error { return tx.InsertCycleMember(5, "/z") },
		func() error { return tx.SetLastRun(ts) },
		tx.Commit,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestCatalog_FreshState(t *testing.T) {
	c := openCatalog(t)

	if !c.NeedsFullRebuild() {
		t.Error("empty catalog should need a full rebuild")
	}
	if _, ok, err := c.LastRun(); err != nil || ok {
		t.Errorf("LastRun() = %v, %v; want no previous run", ok, err)
	}
	node, err := c.GetNode("/a")
	if err != nil || node != nil {
		t.Errorf("GetNode() = %v, %v", node, err)
	}
}

func TestCatalog_RoundTrip(t *testing.T) {
	c := openCatalog(t)
	ts := time.Unix(1700000000, 123456789)
	fill(t, c, ts)

	if c.NeedsFullRebuild() {
		t.Error("catalog should be current after a committed build")
	}

	last, ok, err := c.LastRun()
	if err != nil || !ok || !last.Equal(ts) {
		t.Errorf("LastRun() = %v, %v, %v; want %v", last, ok, err, ts)
	}

	b, err := c.GetNode("/b")
	if err != nil || b == nil {
		t.Fatalf("GetNode() = %v, %v", b, err)
	}
	if b.Depth != 1 || b.NDeps != 1 || b.Status != domain.StatusOK || !b.HasRecord {
		t.Errorf("unexpected node: %+v", b)
	}
	ghost, _ := c.GetNode("/ghost")
	if ghost == nil || ghost.HasRecord || ghost.Status != "" {
		t.Errorf("unexpected referenced-only node: %+v", ghost)
	}

	nodes, err := c.ListNodes()
	if err != nil || len(nodes) != 3 || nodes[0].UCI != "/a" || nodes[2].UCI != "/ghost" {
		t.Errorf("ListNodes() = %+v, %v", nodes, err)
	}

	deps, err := c.FindDependencies("/b")
	if err != nil || len(deps) != 3 {
		t.Fatalf("FindDependencies() = %+v, %v", deps, err)
	}
	if deps[0].Reason != "needed" || deps[1].Reason != "" {
		t.Errorf("parallel edges out of order: %+v", deps)
	}
	dependents, _ := c.FindDependents("/ghost")
	if len(dependents) != 1 || dependents[0].To != "/b" {
		t.Errorf("FindDependents() = %+v", dependents)
	}

	broken, err := c.ListBrokenDeps()
	if err != nil {
		t.Fatal(err)
	}
	if refs, _ := broken.Get("/ghost"); broken.Len() != 1 || len(refs) != 1 || refs[0] != "/b" {
		t.Errorf("ListBrokenDeps() = %v", refs)
	}

	cycles, err := c.ListCycles()
	if err != nil {
		t.Fatal(err)
	}
	first := cycles.Oldest()
	if cycles.Len() != 2 || first.Key != 3 || len(first.Value) != 2 || first.Next().Key != 5 {
		t.Errorf("ListCycles() has %d components", cycles.Len())
	}
	if z, _ := cycles.Get(5); len(z) != 1 || z[0] != "/z" {
		t.Errorf("component 5 = %v", z)
	}
}

func TestCatalog_ResetReplaces(t *testing.T) {
	c := openCatalog(t)
	fill(t, c, time.Unix(1, 0))
	fill(t, c, time.Unix(2, 0))

	nodes, _ := c.ListNodes()
	if len(nodes) != 3 {
		t.Errorf("expected a rebuilt catalog with 3 nodes, got %d", len(nodes))
	}
	deps, _ := c.FindDependencies("/b")
	if len(deps) != 3 {
		t.Errorf("expected 3 edges after rebuild, got %d", len(deps))
	}
}

func TestCatalog_Rollback(t *testing.T) {
	c := openCatalog(t)
	tx, err := c.BeginTx()
	if err != nil {
		t.Fatal(err)
	}
	if err := tx.InsertNode(&domain.CatalogNode{UCI: "/a"}); err != nil {
		t.Fatal(err)
	}
	if err := tx.SetLastRun(time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatal(err)
	}

	if node, _ := c.GetNode("/a"); node != nil {
		t.Error("rolled back node is visible")
	}
	if _, ok, _ := c.LastRun(); ok {
		t.Error("rolled back run time is visible")
	}
}

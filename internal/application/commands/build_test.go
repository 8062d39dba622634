package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"concepdag/internal/application"
	"concepdag/internal/domain"
	"concepdag/internal/graph"
	"concepdag/internal/logging"
	"concepdag/internal/ports"
)

type memorySource struct {
	records *domain.NodeSet
	changed []domain.ChangedRecord
	since   time.Time
	readAt  time.Time
}

func (s *memorySource) ReadRecords(ctx context.Context) (*domain.NodeSet, error) {
	s.readAt = time.Now()
	return s.records, nil
}

func (s *memorySource) RecordPath(uci string) string { return "json1" + uci + ".json" }

func (s *memorySource) ChangedSince(t time.Time) ([]domain.ChangedRecord, error) {
	s.since = t
	return s.changed, nil
}

type memoryStore struct {
	contexts []string
	index    *domain.IndexTree
	broken   *domain.BrokenDeps
	cycles   *domain.CycleReport
	order    []string
	search   *domain.SearchCorpus
}

func (s *memoryStore) Prepare() error { s.contexts = nil; return nil }
func (s *memoryStore) WriteContext(uci string, ctx *domain.NodeContext) error {
	s.contexts = append(s.contexts, uci)
	return nil
}
func (s *memoryStore) WriteIndex(tree *domain.IndexTree) error       { s.index = tree; return nil }
func (s *memoryStore) WriteBrokenDeps(b *domain.BrokenDeps) error    { s.broken = b; return nil }
func (s *memoryStore) WriteCycles(c *domain.CycleReport) error       { s.cycles = c; return nil }
func (s *memoryStore) WriteTopoOrder(order []string) error           { s.order = order; return nil }
func (s *memoryStore) WriteSearch(corpus *domain.SearchCorpus) error { s.search = corpus; return nil }

type memoryCatalog struct {
	nodes     map[string]domain.CatalogNode
	order     []string
	edges     []domain.CatalogEdge
	broken    *domain.BrokenDeps
	cycles    *domain.CycleReport
	lastRun   time.Time
	hasRun    bool
	stale     bool
	committed bool
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{}
}

func (c *memoryCatalog) Open(string) error      { return nil }
func (c *memoryCatalog) Close() error           { return nil }
func (c *memoryCatalog) NeedsFullRebuild() bool { return c.stale }
func (c *memoryCatalog) LastRun() (time.Time, bool, error) {
	return c.lastRun, c.hasRun, nil
}
func (c *memoryCatalog) GetNode(uci string) (*domain.CatalogNode, error) {
	n, ok := c.nodes[uci]
	if !ok {
		return nil, nil
	}
	return &n, nil
}
func (c *memoryCatalog) ListNodes() ([]domain.CatalogNode, error) {
	nodes := make([]domain.CatalogNode, 0, len(c.order))
	for _, uci := range c.order {
		nodes = append(nodes, c.nodes[uci])
	}
	return nodes, nil
}
func (c *memoryCatalog) FindDependents(uci string) ([]domain.CatalogEdge, error) {
	var edges []domain.CatalogEdge
	for _, e := range c.edges {
		if e.From == uci {
			edges = append(edges, e)
		}
	}
	return edges, nil
}
func (c *memoryCatalog) FindDependencies(uci string) ([]domain.CatalogEdge, error) {
	var edges []domain.CatalogEdge
	for _, e := range c.edges {
		if e.To == uci {
			edges = append(edges, e)
		}
	}
	return edges, nil
}
func (c *memoryCatalog) ListBrokenDeps() (*domain.BrokenDeps, error) { return c.broken, nil }
func (c *memoryCatalog) ListCycles() (*domain.CycleReport, error)    { return c.cycles, nil }
func (c *memoryCatalog) BeginTx() (ports.CatalogTx, error)           { return &memoryTx{c: c}, nil }

type memoryTx struct {
	c    *memoryCatalog
	done bool
}

func (t *memoryTx) Reset() error {
	t.c.nodes = make(map[string]domain.CatalogNode)
	t.c.order = nil
	t.c.edges = nil
	t.c.broken = domain.NewBrokenDeps()
	t.c.cycles = domain.NewCycleReport()
	return nil
}
func (t *memoryTx) InsertNode(n *domain.CatalogNode) error {
	t.c.nodes[n.UCI] = *n
	t.c.order = append(t.c.order, n.UCI)
	return nil
}
func (t *memoryTx) InsertEdge(e *domain.CatalogEdge) error { t.c.edges = append(t.c.edges, *e); return nil }
func (t *memoryTx) InsertBrokenDep(missing, ref string) error {
	refs, _ := t.c.broken.Get(missing)
	t.c.broken.Set(missing, append(refs, ref))
	return nil
}
func (t *memoryTx) InsertCycleMember(comp int, uci string) error {
	members, _ := t.c.cycles.Get(comp)
	t.c.cycles.Set(comp, append(members, uci))
	return nil
}
func (t *memoryTx) SetLastRun(ts time.Time) error { t.c.lastRun, t.c.hasRun = ts, true; return nil }
func (t *memoryTx) Commit() error                 { t.done = true; t.c.committed = true; return nil }
func (t *memoryTx) Rollback() error               { return nil }

type missingRenderer struct {
	described bool
}

func (r *missingRenderer) WriteDescription(g *graph.Graph, records *domain.NodeSet) error {
	r.described = true
	return nil
}
func (r *missingRenderer) RenderImage(ctx context.Context) error {
	return ports.ErrRendererUnavailable
}

func sampleRecords(t *testing.T) *domain.NodeSet {
	t.Helper()
	set := domain.NewNodeSet()
	for _, p := range [][2]string{
		{"/math/intro", `{"metadata": {"title": "Intro"}}`},
		{"/math/groups", `{"metadata": {"title": "Groups"}, "deps": {"/math/intro": "basics", "/math/sets": null}}`},
		{"/cyc/a", `{"deps": ["/cyc/b"]}`},
		{"/cyc/b", `{"deps": ["/cyc/a"]}`},
	} {
		rec, err := domain.DecodeNodeRecord([]byte(p[1]))
		if err != nil {
			t.Fatal(err)
		}
		set.Set(p[0], rec)
	}
	return set
}

func TestBuildCommand(t *testing.T) {
	source := &memorySource{records: sampleRecords(t)}
	store := &memoryStore{}
	catalog := newMemoryCatalog()
	renderer := &missingRenderer{}
	now := time.Now()

	cmd := NewBuildCommand(source, store, catalog, renderer, logging.Discard(), application.Options{TransitiveDeps: true})
	res, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(store.contexts) != 4 {
		t.Errorf("wrote %d contexts, want 4", len(store.contexts))
	}
	if store.index == nil || store.search == nil || store.broken == nil || store.cycles == nil {
		t.Fatal("missing artifacts")
	}
	if len(store.order) != 5 {
		t.Errorf("topo order has %d entries, want 5 (record-less vertex included)", len(store.order))
	}
	if store.cycles.Len() != 1 {
		t.Errorf("cycles = %d, want 1", store.cycles.Len())
	}
	if !renderer.described {
		t.Error("graph description was not written")
	}
	if res.Stats.Broken != 1 {
		t.Errorf("Stats.Broken = %d, want 1", res.Stats.Broken)
	}

	if !catalog.committed {
		t.Fatal("catalog transaction not committed")
	}
	if catalog.lastRun.Before(now) {
		t.Errorf("last run %v not stamped", catalog.lastRun)
	}
	if catalog.lastRun.After(source.readAt) {
		t.Errorf("last run %v stamped after records were read at %v", catalog.lastRun, source.readAt)
	}
	groups, ok := catalog.nodes["/math/groups"]
	if !ok || !groups.HasRecord || groups.Title != "Groups" || groups.NDeps != 2 {
		t.Errorf("catalog node = %+v", groups)
	}
	sets, ok := catalog.nodes["/math/sets"]
	if !ok || sets.HasRecord {
		t.Errorf("referenced-only node = %+v, want HasRecord=false", sets)
	}
	if refs, _ := catalog.broken.Get("/math/sets"); len(refs) != 1 || refs[0] != "/math/groups" {
		t.Errorf("catalog broken deps = %v", refs)
	}
	if len(catalog.edges) != 4 {
		t.Errorf("catalog edges = %d, want 4", len(catalog.edges))
	}
}

func TestBuildCommand_Optional(t *testing.T) {
	source := &memorySource{records: sampleRecords(t)}
	store := &memoryStore{}

	cmd := NewBuildCommand(source, store, nil, nil, logging.Discard(), application.Options{})
	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() without catalog and renderer error = %v", err)
	}
}

func TestShowNodeCommand(t *testing.T) {
	res, err := NewAnalyzeCommand(&memorySource{records: sampleRecords(t)}, application.Options{Logger: logging.Discard()}).Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		uci     string
		wantErr error
	}{
		{"existing", "/math/groups", nil},
		{"record-less", "/math/sets", application.ErrNotFound},
		{"unknown", "/nope", application.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := NewShowNodeCommand(res, tt.uci).Execute(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || ctx.UCI != tt.uci {
				t.Errorf("got %v, %v", ctx, err)
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := NewShowNodeCommand(res, "math").Execute(context.Background())
		var valErr *application.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("expected ValidationError, got %v", err)
		}
		if !contains(err.Error(), "relative paths") {
			t.Errorf("unexpected message: %v", err)
		}
	})
}

func TestBuildTreeCommand(t *testing.T) {
	res, err := NewAnalyzeCommand(&memorySource{records: sampleRecords(t)}, application.Options{Logger: logging.Discard()}).Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	root, err := NewBuildTreeCommand(res, "Site").Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if root.Name != "Site" || len(root.Children) != 2 {
		t.Fatalf("root = %s with %d children", root.Name, len(root.Children))
	}
	if root.Find("/cyc/b") == nil {
		t.Error("expected /cyc/b in tree")
	}
}

func TestChangedCommand(t *testing.T) {
	source := &memorySource{changed: []domain.ChangedRecord{{UCI: "/a"}}}

	t.Run("no previous run", func(t *testing.T) {
		changed, since, err := NewChangedCommand(source, newMemoryCatalog()).Execute(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if !since.IsZero() || len(changed) != 1 {
			t.Errorf("since = %v, changed = %v", since, changed)
		}
	})

	t.Run("previous run", func(t *testing.T) {
		catalog := newMemoryCatalog()
		catalog.lastRun = time.Unix(1700000000, 0)
		catalog.hasRun = true
		_, since, err := NewChangedCommand(source, catalog).Execute(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if !since.Equal(catalog.lastRun) || !source.since.Equal(catalog.lastRun) {
			t.Errorf("since = %v, want %v", since, catalog.lastRun)
		}
	})

	t.Run("stale catalog", func(t *testing.T) {
		catalog := newMemoryCatalog()
		catalog.lastRun = time.Unix(1700000000, 0)
		catalog.hasRun = true
		catalog.stale = true
		changed, since, err := NewChangedCommand(source, catalog).Execute(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if !since.IsZero() || !source.since.IsZero() || len(changed) != 1 {
			t.Errorf("since = %v, want every record treated as changed", since)
		}
	})

	t.Run("no catalog", func(t *testing.T) {
		_, since, err := NewChangedCommand(source, nil).Execute(context.Background())
		if err != nil || !since.IsZero() {
			t.Errorf("since = %v, err = %v", since, err)
		}
	})
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

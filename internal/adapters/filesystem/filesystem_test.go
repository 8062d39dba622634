package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"concepdag/internal/domain"
)

func setupProject(t *testing.T, records map[string]string) Layout {
	t.Helper()
	layout := NewLayout(t.TempDir())
	for uci, body := range records {
		path := UCIPath(layout.RecordsDir(), uci)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("failed to write record: %v", err)
		}
	}
	return layout
}

func TestUCIPath(t *testing.T) {
	dir := filepath.Join("proj", "json1")
	path := UCIPath(dir, "/math/groups")
	if want := filepath.Join(dir, "math", "groups.json"); path != want {
		t.Errorf("UCIPath() = %q, want %q", path, want)
	}
	uci, err := PathUCI(dir, path)
	if err != nil || uci != "/math/groups" {
		t.Errorf("PathUCI() = %q, %v", uci, err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/notes"); got != filepath.Join(home, "notes") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("ExpandHome() = %q", got)
	}
}

func TestRecordSource_ReadRecords(t *testing.T) {
	layout := setupProject(t, map[string]string{
		"/math/groups": `{"metadata": {"title": "Groups"}, "deps": ["/math/sets"]}`,
		"/math/sets":   `{"metadata": {"title": "Sets"}}`,
		"/bio/cell":    `{}`,
	})
	source := NewRecordSource(layout)

	records, err := source.ReadRecords(context.Background())
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}

	var got []string
	for pair := records.Oldest(); pair != nil; pair = pair.Next() {
		got = append(got, pair.Key)
	}
	want := []string{"/bio/cell", "/math/groups", "/math/sets"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("records = %v, want %v", got, want)
	}

	groups, _ := records.Get("/math/groups")
	if groups.Status != domain.StatusOK || len(groups.Deps) != 1 {
		t.Errorf("unexpected record: %+v", groups)
	}
}

func TestRecordSource_ReadRecords_Invalid(t *testing.T) {
	layout := setupProject(t, map[string]string{
		"/a": `{"deps": [{"/b": null}, "/c"]}`,
	})
	if _, err := NewRecordSource(layout).ReadRecords(context.Background()); err == nil {
		t.Error("expected error for mixed deps list")
	}
}

func TestRecordSource_ReadRecords_Missing(t *testing.T) {
	layout := NewLayout(t.TempDir())
	if _, err := NewRecordSource(layout).ReadRecords(context.Background()); err == nil {
		t.Error("expected error when records directory is missing")
	}
}

func TestRecordSource_ChangedSince(t *testing.T) {
	layout := setupProject(t, map[string]string{
		"/old": `{}`,
		"/new": `{}`,
	})
	source := NewRecordSource(layout)
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(source.RecordPath("/old"), past, past); err != nil {
		t.Fatal(err)
	}

	changed, err := source.ChangedSince(time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("ChangedSince() error = %v", err)
	}
	if len(changed) != 1 || changed[0].UCI != "/new" {
		t.Errorf("changed = %+v", changed)
	}

	all, _ := source.ChangedSince(time.Time{})
	if len(all) != 2 {
		t.Errorf("expected every record since zero time, got %d", len(all))
	}
}

func TestArtifactWriter(t *testing.T) {
	layout := NewLayout(t.TempDir())
	w := NewArtifactWriter(layout)

	stale := UCIPath(layout.ContextsDir(), "/stale")
	if err := os.MkdirAll(filepath.Dir(stale), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := w.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale context survived Prepare")
	}

	title := "<b>Groups</b>"
	ctx := &domain.NodeContext{UCI: "/math/groups", Status: domain.StatusOK, Metadata: domain.NewMetadata()}
	ctx.Metadata.Set("title", title)
	if err := w.WriteContext("/math/groups", ctx); err != nil {
		t.Fatalf("WriteContext() error = %v", err)
	}
	data, err := os.ReadFile(UCIPath(layout.ContextsDir(), "/math/groups"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), title) {
		t.Errorf("HTML was escaped: %s", data)
	}
	if !strings.Contains(string(data), "\n    \"uci\"") {
		t.Errorf("expected four-space indentation: %s", data)
	}

	if err := w.WriteTopoOrder([]string{"/a", "/b"}); err != nil {
		t.Fatal(err)
	}
	var order []string
	if err := ReadJSON(layout.TopoOrderPath(), &order); err != nil || len(order) != 2 {
		t.Errorf("topo order = %v, %v", order, err)
	}

	corpus := &domain.SearchCorpus{Fields: []string{"search"}, Corpus: []*domain.SearchRecord{}}
	if err := w.WriteSearch(corpus); err != nil {
		t.Fatal(err)
	}
	raw, _ := os.ReadFile(layout.SearchPath())
	if strings.Count(strings.TrimSpace(string(raw)), "\n") != 0 {
		t.Errorf("search corpus should be compact: %s", raw)
	}
}

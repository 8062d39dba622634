package filesystem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"concepdag/internal/domain"
	"concepdag/internal/ports"
)

const jsonIndent = "    "

// ArtifactWriter implements ports.ArtifactStore with JSON files in the project layout
type ArtifactWriter struct {
	layout Layout
}

// Ensure ArtifactWriter implements ArtifactStore
var _ ports.ArtifactStore = (*ArtifactWriter)(nil)

// NewArtifactWriter creates a writer for the project layout
func NewArtifactWriter(layout Layout) *ArtifactWriter {
	return &ArtifactWriter{layout: layout}
}

// Prepare removes render contexts of the previous build
func (w *ArtifactWriter) Prepare() error {
	return os.RemoveAll(w.layout.ContextsDir())
}

func (w *ArtifactWriter) WriteContext(uci string, ctx *domain.NodeContext) error {
	return writeJSON(UCIPath(w.layout.ContextsDir(), uci), ctx, true)
}

func (w *ArtifactWriter) WriteIndex(tree *domain.IndexTree) error {
	return writeJSON(w.layout.IndexPath(), tree, true)
}

func (w *ArtifactWriter) WriteBrokenDeps(broken *domain.BrokenDeps) error {
	return writeJSON(w.layout.BrokenDepsPath(), broken, true)
}

func (w *ArtifactWriter) WriteCycles(cycles *domain.CycleReport) error {
	return writeJSON(w.layout.CyclesPath(), cycles, true)
}

func (w *ArtifactWriter) WriteTopoOrder(order []string) error {
	return writeJSON(w.layout.TopoOrderPath(), order, true)
}

// WriteSearch writes the corpus compactly; it is downloaded by the browser
func (w *ArtifactWriter) WriteSearch(corpus *domain.SearchCorpus) error {
	return writeJSON(w.layout.SearchPath(), corpus, false)
}

func writeJSON(path string, v any, indent bool) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", jsonIndent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ReadJSON decodes a JSON artifact written by ArtifactWriter
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

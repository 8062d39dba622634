// Package graphviz writes the dependency graph as a DOT description and
// lays it out with the dot tool when it is installed.
package graphviz

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"concepdag/internal/domain"
	"concepdag/internal/graph"
	"concepdag/internal/ports"

	"github.com/spf13/cast"
)

const (
	recordColor  = "lightblue"
	missingColor = "lightgrey"
)

// Renderer implements ports.GraphRenderer
type Renderer struct {
	dotPath   string
	imagePath string
	format    string
	lookPath  func(string) (string, error)
}

// Ensure Renderer implements GraphRenderer
var _ ports.GraphRenderer = (*Renderer)(nil)

// NewRenderer creates a renderer writing the description to dotPath and
// the image to imagePath. The image format follows imagePath's extension.
func NewRenderer(dotPath, imagePath string) *Renderer {
	format := strings.TrimPrefix(filepath.Ext(imagePath), ".")
	if format == "" {
		format = "svg"
	}
	return &Renderer{
		dotPath:   dotPath,
		imagePath: imagePath,
		format:    format,
		lookPath:  exec.LookPath,
	}
}

// WriteDescription writes the DOT description of g
func (r *Renderer) WriteDescription(g *graph.Graph, records *domain.NodeSet) error {
	if err := os.MkdirAll(filepath.Dir(r.dotPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(r.dotPath)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := WriteDOT(w, g, records); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderImage runs dot over the description written last
func (r *Renderer) RenderImage(ctx context.Context) error {
	dot, err := r.lookPath("dot")
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrRendererUnavailable, err)
	}
	if err := os.MkdirAll(filepath.Dir(r.imagePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	cmd := exec.CommandContext(ctx, dot, "-T"+r.format, "-o", r.imagePath, r.dotPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("dot failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// WriteDOT writes g in DOT syntax. Vertices are labeled with their title
// when the record has one and edges with their reason.
func WriteDOT(w io.Writer, g *graph.Graph, records *domain.NodeSet) error {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=\"LR\";\n")
	b.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, uci := range g.Labels() {
		label, color := uci, missingColor
		if rec, ok := records.Get(uci); ok {
			color = recordColor
			if title, ok := rec.Metadata.Get("title"); ok {
				if s, err := cast.ToStringE(title); err == nil && s != "" {
					label = s
				}
			}
		}
		fmt.Fprintf(&b, "  %s [label=%s, fillcolor=%s];\n", quote(uci), quote(label), quote(color))
	}

	b.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Reason != nil && *e.Reason != "" {
			fmt.Fprintf(&b, "  %s -> %s [label=%s];\n", quote(e.From), quote(e.To), quote(*e.Reason))
			continue
		}
		fmt.Fprintf(&b, "  %s -> %s;\n", quote(e.From), quote(e.To))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

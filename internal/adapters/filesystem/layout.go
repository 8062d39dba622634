package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// Layout resolves the well-known locations inside a project directory
type Layout struct {
	Root string
}

// NewLayout creates a layout for the project at root
func NewLayout(root string) Layout {
	return Layout{Root: ExpandHome(root)}
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func (l Layout) InputDir() string        { return filepath.Join(l.Root, "input") }
func (l Layout) IntermediateDir() string { return filepath.Join(l.Root, "intermediate") }
func (l Layout) OutputDir() string       { return filepath.Join(l.Root, "output") }

// RecordsDir holds the parser's normalized records, one JSON file per UCI
func (l Layout) RecordsDir() string { return filepath.Join(l.IntermediateDir(), "json1") }

// ContextsDir holds one render context per UCI
func (l Layout) ContextsDir() string { return filepath.Join(l.IntermediateDir(), "json2") }

func (l Layout) IndexPath() string      { return filepath.Join(l.IntermediateDir(), "index.json") }
func (l Layout) BrokenDepsPath() string { return filepath.Join(l.IntermediateDir(), "broken_deps.json") }
func (l Layout) CyclesPath() string     { return filepath.Join(l.IntermediateDir(), "multi_node_sccs.json") }
func (l Layout) TopoOrderPath() string  { return filepath.Join(l.IntermediateDir(), "topo_order.json") }
func (l Layout) GraphDOTPath() string   { return filepath.Join(l.IntermediateDir(), "graph.dot") }
func (l Layout) SearchPath() string     { return filepath.Join(l.OutputDir(), "searchinfo", "raw.json") }
func (l Layout) GraphImagePath() string { return filepath.Join(l.OutputDir(), "graph.svg") }

// UCIPath maps a UCI to a JSON file below dir
func UCIPath(dir, uci string) string {
	return filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(uci, "/"))+".json")
}

// PathUCI maps a JSON file below dir back to its UCI
func PathUCI(dir, path string) (string, error) {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel))), nil
}

package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrIndexCollision is returned when a path segment is needed both as a
// section and as a leaf.
var ErrIndexCollision = errors.New("index collision")

// IndexCollisionError names the UCI that could not be placed in the tree
type IndexCollisionError struct {
	UCI     string
	Segment string
}

func (e *IndexCollisionError) Error() string {
	return fmt.Sprintf("cannot place %s in index: %q is both a section and a leaf", e.UCI, e.Segment)
}

func (e *IndexCollisionError) Is(target error) bool {
	return target == ErrIndexCollision
}

// IndexLeaf is the summary of one node as shown in the site index
type IndexLeaf struct {
	UCI        string `json:"uci"`
	URL        string `json:"url"`
	Status     Status `json:"status"`
	DepsStatus Status `json:"deps_status"`
	GraphMetrics
	Metadata *Metadata `json:"metadata"`
}

// IndexTree is a section of the site index. Children are either nested
// sections keyed by a display name or leaves keyed by the raw last segment.
type IndexTree struct {
	children *orderedmap.OrderedMap[string, *IndexTree]
	leaf     *IndexLeaf
}

// NewIndexTree creates an empty root section
func NewIndexTree() *IndexTree {
	return &IndexTree{children: orderedmap.New[string, *IndexTree]()}
}

// SectionName turns a path segment into a section title: "linear-algebra" -> "Linear Algebra".
// Every run of letters is title-cased on its own, so "o'neil" becomes "O'Neil"
// and "c3po" becomes "C3Po".
func SectionName(segment string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	caser := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(s))
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(s[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}

// Add places leaf under the sections derived from its UCI
func (t *IndexTree) Add(leaf *IndexLeaf) error {
	parts := UCISegments(leaf.UCI)
	cur := t
	for _, part := range parts[:len(parts)-1] {
		name := SectionName(part)
		next, ok := cur.children.Get(name)
		if !ok {
			next = NewIndexTree()
			cur.children.Set(name, next)
		} else if next.IsLeaf() {
			return &IndexCollisionError{UCI: leaf.UCI, Segment: name}
		}
		cur = next
	}

	last := parts[len(parts)-1]
	if existing, ok := cur.children.Get(last); ok && !existing.IsLeaf() {
		return &IndexCollisionError{UCI: leaf.UCI, Segment: last}
	}
	cur.children.Set(last, &IndexTree{leaf: leaf})
	return nil
}

// IsLeaf reports whether this entry is a node summary rather than a section
func (t *IndexTree) IsLeaf() bool {
	return t.leaf != nil
}

// Leaf returns the node summary of a leaf entry
func (t *IndexTree) Leaf() *IndexLeaf {
	return t.leaf
}

// Len returns the number of direct children
func (t *IndexTree) Len() int {
	if t.children == nil {
		return 0
	}
	return t.children.Len()
}

// Child returns the direct child with the given key
func (t *IndexTree) Child(key string) (*IndexTree, bool) {
	if t.children == nil {
		return nil, false
	}
	return t.children.Get(key)
}

// Each calls fn for every direct child in insertion order
func (t *IndexTree) Each(fn func(key string, child *IndexTree)) {
	if t.children == nil {
		return
	}
	for pair := t.children.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Leaves returns every leaf below t in depth-first order
func (t *IndexTree) Leaves() []*IndexLeaf {
	var out []*IndexLeaf
	var walk func(n *IndexTree)
	walk = func(n *IndexTree) {
		if n.IsLeaf() {
			out = append(out, n.leaf)
			return
		}
		n.Each(func(_ string, child *IndexTree) { walk(child) })
	}
	walk(t)
	return out
}

func (t *IndexTree) MarshalJSON() ([]byte, error) {
	if t.leaf != nil {
		return json.Marshal(t.leaf)
	}
	if t.children == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t.children)
}

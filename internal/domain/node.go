package domain

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Status is the processing state of a node or of its dependencies, as set by the parser
type Status string

// StatusOK is the nominal status. Search records omit it.
const StatusOK Status = "ok"

// Metadata is the ordered free-form metadata of a node
type Metadata = orderedmap.OrderedMap[string, any]

// DepGroup is one declared set of dependencies: target UCI -> optional reason
type DepGroup = orderedmap.OrderedMap[string, *string]

// NodeSet holds node records keyed by UCI, in discovery order
type NodeSet = orderedmap.OrderedMap[string, *NodeRecord]

// NewMetadata returns an empty metadata mapping
func NewMetadata() *Metadata {
	return orderedmap.New[string, any]()
}

// NewDepGroup returns an empty dependency group
func NewDepGroup() *DepGroup {
	return orderedmap.New[string, *string]()
}

// NewNodeSet returns an empty node set
func NewNodeSet() *NodeSet {
	return orderedmap.New[string, *NodeRecord]()
}

// NodeRecord is one normalized node as handed over by the parser
type NodeRecord struct {
	Deps       DepGroups `json:"deps"`
	Metadata   *Metadata `json:"metadata"`
	Status     Status    `json:"status"`
	DepsStatus Status    `json:"deps_status"`
}

// Normalize fills defaults for fields the parser left out
func (r *NodeRecord) Normalize() {
	if r.Metadata == nil {
		r.Metadata = NewMetadata()
	}
	if r.Deps == nil {
		r.Deps = DepGroups{}
	}
	if r.Status == "" {
		r.Status = StatusOK
	}
	if r.DepsStatus == "" {
		r.DepsStatus = StatusOK
	}
}

// DepGroups is the ordered list of dependency groups of a node.
//
// On input it accepts every shape a content author may write: null, a single
// mapping, a list of UCI strings (one group without reasons) or a list of
// mappings (one group each). Empty items are skipped.
type DepGroups []*DepGroup

// DepsError reports a malformed deps declaration
type DepsError struct {
	Path   string
	Reason string
}

func (e *DepsError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("deps: %s", e.Reason)
	}
	return fmt.Sprintf("deps%s: %s", e.Path, e.Reason)
}

func (d *DepGroups) UnmarshalJSON(data []byte) error {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if isFalsy(decoded) {
		*d = DepGroups{}
		return nil
	}

	switch decoded.(type) {
	case map[string]any:
		group, err := parseDepGroup(data, "")
		if err != nil {
			return err
		}
		*d = DepGroups{}
		if group.Len() > 0 {
			*d = append(*d, group)
		}
		return nil
	case []any:
	default:
		return &DepsError{Reason: "not a list, mapping or null"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	var strs, maps, nonEmpty int
	values := make([]any, len(items))
	for i, raw := range items {
		if err := json.Unmarshal(raw, &values[i]); err != nil {
			return err
		}
		if isFalsy(values[i]) {
			continue
		}
		nonEmpty++
		switch values[i].(type) {
		case string:
			strs++
		case map[string]any:
			maps++
		}
	}

	groups := DepGroups{}
	switch {
	case strs == nonEmpty:
		group := NewDepGroup()
		for i, p := range values {
			s, ok := p.(string)
			if !ok || s == "" {
				continue
			}
			if err := ValidateUCI(s); err != nil {
				return &DepsError{Path: fmt.Sprintf("[%d]", i), Reason: err.Error()}
			}
			group.Set(s, nil)
		}
		groups = append(groups, group)
	case maps == nonEmpty:
		for i, raw := range items {
			if isFalsy(values[i]) {
				continue
			}
			group, err := parseDepGroup(raw, fmt.Sprintf("[%d]", i))
			if err != nil {
				return err
			}
			if group.Len() > 0 {
				groups = append(groups, group)
			}
		}
	default:
		return &DepsError{Reason: "list has items of invalid type"}
	}

	*d = groups
	return nil
}

func parseDepGroup(data []byte, path string) (*DepGroup, error) {
	group := NewDepGroup()
	if err := json.Unmarshal(data, group); err != nil {
		return nil, &DepsError{Path: path, Reason: "values must be a string or null"}
	}
	for pair := group.Oldest(); pair != nil; pair = pair.Next() {
		if err := ValidateUCI(pair.Key); err != nil {
			return nil, &DepsError{Path: path, Reason: err.Error()}
		}
	}
	return group, nil
}

func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

// DecodeNodeRecord parses and normalizes a record file
func DecodeNodeRecord(data []byte) (*NodeRecord, error) {
	var rec NodeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	rec.Normalize()
	return &rec, nil
}

package domain

import "time"

// CatalogNode is a node as persisted in the build catalog
type CatalogNode struct {
	UCI        string `json:"uci"`
	Title      string `json:"title"`      // metadata title, empty if none
	HasRecord  bool   `json:"has_record"` // false for referenced-only vertices
	Status     Status `json:"status"`
	DepsStatus Status `json:"deps_status"`
	Depth      int    `json:"depth"`
	TopoOrder  int    `json:"topo_order"`
	NDeps      int    `json:"n_deps"`
	NRdeps     int    `json:"n_rdeps"`
	NTdeps     int    `json:"n_tdeps"`
	NTrdeps    int    `json:"n_trdeps"`
}

// CatalogEdge is a dependency edge as persisted in the build catalog
type CatalogEdge struct {
	From   string `json:"from"` // dependency
	To     string `json:"to"`   // dependent
	Reason string `json:"reason,omitempty"`
}

// CachedNode is a node of the last build together with its direct edges
type CachedNode struct {
	Node         CatalogNode   `json:"node"`
	Dependencies []CatalogEdge `json:"dependencies"`
	Dependents   []CatalogEdge `json:"dependents"`
	BuiltAt      time.Time     `json:"built_at"`
}

// ChangedRecord is a record file modified since the last build
type ChangedRecord struct {
	UCI   string
	Path  string
	Mtime time.Time
}

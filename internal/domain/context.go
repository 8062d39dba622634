package domain

// GraphMetrics are the graph-derived numbers published for a node.
// Every field is nil when the node has no record, and the transitive
// counts are nil when the closure was not computed.
type GraphMetrics struct {
	Depth     *int `json:"depth"`
	TopoOrder *int `json:"topo_order"`
	NDeps     *int `json:"n_deps"`
	NRdeps    *int `json:"n_rdeps"`
	NTdeps    *int `json:"n_tdeps"`
	NTrdeps   *int `json:"n_trdeps"`
}

// DepContext describes one referenced node inside another node's context
type DepContext struct {
	UCI        string  `json:"uci"`
	Exists     bool    `json:"exists"`
	Reason     *string `json:"reason"`
	Status     *Status `json:"status"`
	DepsStatus *Status `json:"deps_status"`
	GraphMetrics
	Metadata *Metadata `json:"metadata"`
}

// NodeContext is the render context of one node
type NodeContext struct {
	UCI        string `json:"uci"`
	Status     Status `json:"status"`
	DepsStatus Status `json:"deps_status"`
	GraphMetrics
	Deps     [][]DepContext `json:"deps"`
	Rdeps    []DepContext   `json:"rdeps"`
	Tdeps    []DepContext   `json:"tdeps,omitempty"`
	Metadata *Metadata      `json:"metadata"`
	SiteURL  *string        `json:"siteurl,omitempty"`
}

package domain

// TreeNode is a node of the browsable index tree
type TreeNode struct {
	Name       string
	Leaf       *IndexLeaf // nil for sections
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// NewBrowseTree converts an index tree into a navigable tree rooted at name
func NewBrowseTree(name string, index *IndexTree) *TreeNode {
	root := &TreeNode{Name: name, IsExpanded: true}
	addChildren(root, index)
	return root
}

func addChildren(parent *TreeNode, index *IndexTree) {
	index.Each(func(key string, child *IndexTree) {
		node := &TreeNode{Name: key, Parent: parent}
		if child.IsLeaf() {
			node.Leaf = child.Leaf()
		} else {
			addChildren(node, child)
		}
		parent.Children = append(parent.Children, node)
	})
}

// IsLeaf reports whether the node stands for a content node
func (n *TreeNode) IsLeaf() bool {
	return n.Leaf != nil
}

// UCI returns the UCI of a leaf, or "" for a section
func (n *TreeNode) UCI() string {
	if n.Leaf == nil {
		return ""
	}
	return n.Leaf.UCI
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	for current := n.Parent; current != nil; current = current.Parent {
		depth++
	}
	return depth
}

// Find returns the leaf for uci, or nil
func (n *TreeNode) Find(uci string) *TreeNode {
	if n.UCI() == uci && uci != "" {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(uci); found != nil {
			return found
		}
	}
	return nil
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}

// ExpandAll expands the node and all its descendants
func (n *TreeNode) ExpandAll() {
	n.IsExpanded = true
	for _, child := range n.Children {
		child.ExpandAll()
	}
}

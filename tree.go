package main

// TreeNode is one reached state. The parent reference plus the producing
// control and duration are enough to replay the edge. Nodes are never
// mutated or removed once inserted; the tree only grows.
type TreeNode struct {
	State    State
	Control  Control
	Duration float64
	Parent   *TreeNode
}

// Depth returns the number of edges back to the root.
func (n *TreeNode) Depth() int {
	d := 0
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		d++
	}
	return d
}

// Tree is the planner's grown search structure: an insertion-ordered node
// collection plus a nearest-neighbor lookup keyed by the state-space
// metric.
type Tree struct {
	space *StateSpace
	nodes []*TreeNode
	index *NodeIndex // nil means linear scans
}

// NewTree creates an empty tree over the given space. With useIndex the
// nearest lookup goes through an R-tree; that only matches the metric
// when yaw is ignored, so a weighted metric always falls back to the
// linear scan.
func NewTree(space *StateSpace, useIndex bool) *Tree {
	t := &Tree{space: space}
	if useIndex && space.YawWeight == 0 {
		t.index = NewNodeIndex()
	}
	return t
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// At returns the i-th node in insertion order.
func (t *Tree) At(i int) *TreeNode {
	return t.nodes[i]
}

// Root returns the first inserted node, or nil for an empty tree.
func (t *Tree) Root() *TreeNode {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.nodes[0]
}

// Insert appends a node reached from parent by applying c for duration.
// The root is inserted with a nil parent and a zero control.
func (t *Tree) Insert(parent *TreeNode, s State, c Control, duration float64) *TreeNode {
	n := &TreeNode{State: s, Control: c, Duration: duration, Parent: parent}
	t.nodes = append(t.nodes, n)
	if t.index != nil {
		t.index.Insert(n)
	}
	return n
}

// Nearest returns the node minimizing the metric distance to target.
// The linear scan keeps the first inserted node on ties.
func (t *Tree) Nearest(target State) *TreeNode {
	if len(t.nodes) == 0 {
		return nil
	}
	if t.index != nil {
		if n := t.index.Nearest(target); n != nil {
			return n
		}
	}

	best := t.nodes[0]
	bestDist := t.space.Distance(best.State, target)
	for _, n := range t.nodes[1:] {
		if d := t.space.Distance(n.State, target); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// PathTo reconstructs the waypoint sequence from the root to n by walking
// parent references and reversing.
func (t *Tree) PathTo(n *TreeNode) []Waypoint {
	var path []Waypoint
	for cur := n; cur != nil; cur = cur.Parent {
		path = append(path, Waypoint{State: cur.State, Control: cur.Control, Duration: cur.Duration})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

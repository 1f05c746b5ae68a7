package tree

import (
	"github.com/erfan1375er/highcharts/pkg/errors"
	"github.com/erfan1375er/highcharts/pkg/options"
)

// VirtualRootID is the id of the synthetic root created by [RootSynthetic].
// Input ids are never empty, so it cannot collide with a record.
const VirtualRootID = ""

// Record is one input data point.
type Record struct {
	ID        string         `json:"id" yaml:"id"`
	Parent    string         `json:"parent,omitempty" yaml:"parent,omitempty"`
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	Value     *float64       `json:"value,omitempty" yaml:"value,omitempty"`
	Collapsed *bool          `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Color     string         `json:"color,omitempty" yaml:"color,omitempty"`
	Marker    options.Marker `json:"marker,omitzero" yaml:"marker,omitempty"`
	Link      options.Link   `json:"link,omitzero" yaml:"link,omitempty"`
}

// Validate checks the record's id and its per-point color, marker and link
// options. Option errors carry INVALID_OPTION and the record id.
func (r Record) Validate() error {
	if err := errors.ValidateNodeID(r.ID); err != nil {
		return err
	}
	if err := errors.ValidateColor(r.Color); err != nil {
		return errors.WrapNode(errors.ErrCodeInvalidOption, r.ID, err, "node %q color", r.ID)
	}
	if err := r.Marker.Validate(); err != nil {
		return errors.WrapNode(errors.ErrCodeInvalidOption, r.ID, err, "node %q marker", r.ID)
	}
	if err := r.Link.Validate(); err != nil {
		return errors.WrapNode(errors.ErrCodeInvalidOption, r.ID, err, "node %q link", r.ID)
	}
	return nil
}

// Node is one vertex of a [Tree]. Nodes refer to each other by id only;
// the tree owns every node.
type Node struct {
	ID       string
	Parent   string   // parent id, "" for roots and orphan tops
	Children []string // child ids in input order
	Index    int      // position in the input, -1 for the virtual root
	Record   *Record  // copy of the input record, nil for the virtual root

	Level  int     // depth below the rendered root (root = 0, virtual root = -1)
	Depth  int     // depth below the node's top-most input ancestor
	Height int     // longest path to a leaf below this node
	Value  float64 // sum of record values in this subtree

	// Layout state, rewritten by every pass.
	XPosition float64 // abstract column
	YPosition float64 // abstract position along the column
	SizeX     float64
	SizeY     float64
	X, Y      float64 // top-left pixel position

	Collapsed bool
	Hidden    bool
	Virtual   bool
}

// IsLeaf reports whether the node has no children in the data.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is an arena of nodes keyed by id with a single layout root.
//
// Order lists input ids in input order and is the only iteration order
// algorithms use. Orphans are input nodes outside the rendered tree.
// The zero value is an empty tree.
type Tree struct {
	Root     string
	Nodes    map[string]*Node
	Order    []string
	Orphans  []string
	Warnings []error
	Virtual  bool
}

// HasRoot reports whether a layout root was selected.
func (t *Tree) HasRoot() bool {
	if t == nil {
		return false
	}
	_, ok := t.Nodes[t.Root]
	return ok
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id string) *Node {
	if t == nil {
		return nil
	}
	return t.Nodes[id]
}

// Children returns the ordered child ids of a node.
func (t *Tree) Children(id string) []string {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// Len returns the number of input nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Order)
}

// Walk visits the rendered tree in preorder, children in input order.
// Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(n *Node) bool) {
	if !t.HasRoot() {
		return
	}
	t.walkFrom(t.Root, fn)
}

func (t *Tree) walkFrom(id string, fn func(n *Node) bool) {
	stack := []string{id}
	for len(stack) > 0 {
		cur := t.Nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// ParentOf returns the parent of a node inside the rendered tree, or nil
// for the root. Tops adopted by a virtual root report the virtual root.
func (t *Tree) ParentOf(id string) *Node {
	n := t.Node(id)
	if n == nil || n.Virtual || n.ID == t.Root {
		return nil
	}
	if n.Parent == "" {
		if t.Virtual && n.Level == 0 {
			return t.Nodes[VirtualRootID]
		}
		return nil
	}
	return t.Nodes[n.Parent]
}

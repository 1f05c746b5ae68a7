package tree

import (
	"slices"
	"strings"

	"github.com/erfan1375er/highcharts/pkg/errors"
)

// RootPolicy selects the layout root when the input has several top-level
// candidates (records without a parent or whose parent is missing).
type RootPolicy int

const (
	// RootFirst makes the first candidate in input order the root. Other
	// candidates and their subtrees become orphans.
	RootFirst RootPolicy = iota
	// RootSynthetic adopts every candidate under a virtual root at level -1
	// so disconnected branches are laid out side by side. The virtual root
	// is never rendered or linked.
	RootSynthetic
)

// ParseRootPolicy maps a configuration name to a policy. Empty means
// RootFirst.
func ParseRootPolicy(s string) (RootPolicy, error) {
	switch strings.ToLower(s) {
	case "", "first":
		return RootFirst, nil
	case "synthetic":
		return RootSynthetic, nil
	}
	return RootFirst, errors.New(errors.ErrCodeInvalidOption, "unknown root policy %q", s)
}

// BuildOptions configure [Build].
type BuildOptions struct {
	Policy RootPolicy
	// RootID names the layout root explicitly, overriding Policy. Everything
	// outside its subtree is orphaned.
	RootID string
}

// Build converts records into a tree. It never modifies records.
//
// Fatal conditions (invalid or duplicate ids, invalid per-record options,
// cycles, an unknown RootID)
// are returned as the error and no tree is produced. Missing parents and
// orphaned subtrees are recovered from and recorded in Tree.Warnings.
func Build(records []Record, opts BuildOptions) (*Tree, error) {
	t := &Tree{
		Nodes: make(map[string]*Node, len(records)+1),
		Order: make([]string, 0, len(records)),
	}

	for i := range records {
		rec := records[i]
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		if _, exists := t.Nodes[rec.ID]; exists {
			return nil, errors.ForNode(errors.ErrCodeDuplicateNode, rec.ID, "duplicate node id %q", rec.ID)
		}
		t.Nodes[rec.ID] = &Node{ID: rec.ID, Parent: rec.Parent, Index: i, Record: &rec}
		t.Order = append(t.Order, rec.ID)
	}

	var candidates []string
	for _, id := range t.Order {
		n := t.Nodes[id]
		switch {
		case n.Parent == "":
			candidates = append(candidates, id)
		case n.Parent == id:
			return nil, errors.ForNode(errors.ErrCodeCyclicStructure, id, "node %q is its own parent", id)
		default:
			parent, ok := t.Nodes[n.Parent]
			if !ok {
				t.Warnings = append(t.Warnings, errors.ForNode(errors.ErrCodeMissingParent, id,
					"parent %q of node %q not found, treating it as a root candidate", n.Parent, id))
				n.Parent = ""
				candidates = append(candidates, id)
				continue
			}
			parent.Children = append(parent.Children, id)
		}
	}

	if err := t.checkAcyclic(candidates); err != nil {
		return nil, err
	}

	for _, id := range candidates {
		t.assignLevels(id, 0, true)
	}

	if err := t.selectRoot(candidates, opts); err != nil {
		return nil, err
	}
	t.aggregate()
	return t, nil
}

// checkAcyclic walks every candidate with an on-path set. Nodes no candidate
// reaches hang off a pure cycle, which is then traced through parent ids.
func (t *Tree) checkAcyclic(candidates []string) error {
	visited := make(map[string]bool, len(t.Nodes))
	type frame struct {
		id   string
		next int
	}
	for _, start := range candidates {
		onPath := map[string]bool{start: true}
		stack := []frame{{id: start}}
		visited[start] = true
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := t.Nodes[top.id].Children
			if top.next == len(children) {
				delete(onPath, top.id)
				stack = stack[:len(stack)-1]
				continue
			}
			child := children[top.next]
			top.next++
			if onPath[child] || visited[child] {
				return errors.ForNode(errors.ErrCodeCyclicStructure, child, "node %q reached twice below %q", child, start)
			}
			onPath[child] = true
			visited[child] = true
			stack = append(stack, frame{id: child})
		}
	}

	for _, id := range t.Order {
		if visited[id] {
			continue
		}
		return t.traceCycle(id)
	}
	return nil
}

func (t *Tree) traceCycle(id string) error {
	seen := map[string]int{}
	var chain []string
	for cur := id; ; cur = t.Nodes[cur].Parent {
		if at, ok := seen[cur]; ok {
			cycle := append(slices.Clone(chain[at:]), cur)
			return errors.ForNode(errors.ErrCodeCyclicStructure, cur, "cycle %s", strings.Join(cycle, " -> "))
		}
		seen[cur] = len(chain)
		chain = append(chain, cur)
	}
}

// assignLevels sets Level (and Depth when top is set) in the subtree of id.
func (t *Tree) assignLevels(id string, level int, top bool) {
	t.walkFrom(id, func(n *Node) bool {
		if n.ID == id {
			n.Level = level
		} else {
			n.Level = t.Nodes[n.Parent].Level + 1
		}
		if top {
			n.Depth = n.Level
		}
		return true
	})
}

func (t *Tree) selectRoot(candidates []string, opts BuildOptions) error {
	if opts.RootID != "" {
		root, ok := t.Nodes[opts.RootID]
		if !ok {
			return errors.ForNode(errors.ErrCodeInvalidInput, opts.RootID, "root id %q not found", opts.RootID)
		}
		t.Root = root.ID
		t.assignLevels(root.ID, 0, false)
		t.orphanOutside(candidates)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}
	if opts.Policy == RootSynthetic && len(candidates) > 1 {
		t.Virtual = true
		t.Root = VirtualRootID
		t.Nodes[VirtualRootID] = &Node{
			ID:       VirtualRootID,
			Index:    -1,
			Level:    -1,
			Depth:    -1,
			Children: slices.Clone(candidates),
			Virtual:  true,
		}
		return nil
	}
	t.Root = candidates[0]
	t.orphanOutside(candidates)
	return nil
}

// orphanOutside records every input node outside the root's subtree and a
// warning per disconnected candidate.
func (t *Tree) orphanOutside(candidates []string) {
	inTree := make(map[string]bool, len(t.Nodes))
	t.Walk(func(n *Node) bool {
		inTree[n.ID] = true
		return true
	})
	for _, id := range t.Order {
		if !inTree[id] {
			t.Orphans = append(t.Orphans, id)
		}
	}
	for _, id := range candidates {
		if inTree[id] {
			continue
		}
		t.Warnings = append(t.Warnings, errors.ForNode(errors.ErrCodeOrphanedSubtree, id,
			"subtree %q is not connected to root %q and is not rendered", id, t.Root))
	}
}

// aggregate computes Height and Value bottom-up for the rendered tree.
func (t *Tree) aggregate() {
	var pre []*Node
	t.Walk(func(n *Node) bool {
		pre = append(pre, n)
		return true
	})
	for i := len(pre) - 1; i >= 0; i-- {
		n := pre[i]
		n.Height = 0
		n.Value = 0
		if n.Record != nil && n.Record.Value != nil {
			n.Value = *n.Record.Value
		}
		for _, c := range n.Children {
			child := t.Nodes[c]
			n.Height = max(n.Height, child.Height+1)
			n.Value += child.Value
		}
	}
}

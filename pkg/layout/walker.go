package layout

import (
	"github.com/erfan1375er/highcharts/pkg/tree"
)

// Walker is the tidy-tree layout of Walker as improved to linear time by
// Buchheim, Jünger and Leipert. Leaves sit at successive positions, parents
// are centered at the mean of their children, and a subtree that would
// overlap its left siblings is shifted right as a whole while the shift is
// spread over the siblings in between.
type Walker struct{}

// Name implements Algorithm.
func (Walker) Name() string { return "Walker" }

// wnode is the per-pass working state of one laid-out node.
type wnode struct {
	id       string
	level    int
	virtual  bool
	parent   *wnode
	children []*wnode
	number   int // index among siblings

	prelim, mod   float64
	shift, change float64
	thread, anc   *wnode
}

func (v *wnode) leftSibling() *wnode {
	if v.parent == nil || v.number == 0 {
		return nil
	}
	return v.parent.children[v.number-1]
}

func (v *wnode) leftmostSibling() *wnode {
	if v.parent == nil {
		return nil
	}
	return v.parent.children[0]
}

func (v *wnode) nextLeft() *wnode {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.thread
}

func (v *wnode) nextRight() *wnode {
	if len(v.children) > 0 {
		return v.children[len(v.children)-1]
	}
	return v.thread
}

// Compute implements Algorithm. X is the node level, Y the position with
// the root at 0.
func (w Walker) Compute(t *tree.Tree, hints Hints) (Positions, error) {
	pos := NewPositions()
	if !t.HasRoot() {
		return pos, nil
	}
	root := t.Node(t.Root)
	if root.Hidden {
		return pos, nil
	}

	r := w.build(t, root)
	d := hints.distance()
	w.firstWalk(r, d)
	w.secondWalk(r, -r.prelim, &pos)
	return pos, nil
}

// build copies the visible part of the tree into working nodes.
func (w Walker) build(t *tree.Tree, root *tree.Node) *wnode {
	var visit func(n *tree.Node) *wnode
	visit = func(n *tree.Node) *wnode {
		v := &wnode{id: n.ID, level: n.Level, virtual: n.Virtual}
		v.anc = v
		if n.Collapsed {
			return v
		}
		for _, cid := range n.Children {
			cn := t.Node(cid)
			if cn == nil || cn.Hidden {
				continue
			}
			child := visit(cn)
			child.parent = v
			child.number = len(v.children)
			v.children = append(v.children, child)
		}
		return v
	}
	return visit(root)
}

func (w Walker) firstWalk(v *wnode, distance float64) {
	if len(v.children) == 0 {
		if ls := v.leftSibling(); ls != nil {
			v.prelim = ls.prelim + distance
		}
		return
	}

	defaultAncestor := v.children[0]
	for _, c := range v.children {
		w.firstWalk(c, distance)
		defaultAncestor = w.apportion(c, defaultAncestor, distance)
	}
	w.executeShifts(v)

	// Parents sit at the mean of all children, which equals the midpoint
	// of the outer children whenever siblings are evenly spread.
	var mid float64
	for _, c := range v.children {
		mid += c.prelim
	}
	mid /= float64(len(v.children))
	if ls := v.leftSibling(); ls != nil {
		v.prelim = ls.prelim + distance
		v.mod = v.prelim - mid
	} else {
		v.prelim = mid
	}
}

// apportion pushes the subtree of v right until its left contour clears
// the right contour of every subtree to its left.
func (w Walker) apportion(v, defaultAncestor *wnode, distance float64) *wnode {
	ls := v.leftSibling()
	if ls == nil {
		return defaultAncestor
	}

	// i = inner, o = outer; p = right subtree (v), m = left forest.
	vip, vop := v, v
	vim, vom := ls, v.leftmostSibling()
	sip, sop := vip.mod, vop.mod
	sim, som := vim.mod, vom.mod

	for vim.nextRight() != nil && vip.nextLeft() != nil {
		vim = vim.nextRight()
		vip = vip.nextLeft()
		vom = vom.nextLeft()
		vop = vop.nextRight()
		vop.anc = v

		shift := (vim.prelim + sim) - (vip.prelim + sip) + distance
		if shift > 0 {
			w.moveSubtree(w.ancestor(vim, v, defaultAncestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.mod
		sip += vip.mod
		som += vom.mod
		sop += vop.mod
	}

	if vim.nextRight() != nil && vop.nextRight() == nil {
		vop.thread = vim.nextRight()
		vop.mod += sim - sop
		return defaultAncestor
	}
	if vip.nextLeft() != nil && vom.nextLeft() == nil {
		vom.thread = vip.nextLeft()
		vom.mod += sip - som
	}
	return v
}

// ancestor returns the greatest distinct ancestor of vim among v's left
// siblings.
func (w Walker) ancestor(vim, v, defaultAncestor *wnode) *wnode {
	if vim.anc.parent == v.parent {
		return vim.anc
	}
	return defaultAncestor
}

func (w Walker) moveSubtree(wm, wp *wnode, shift float64) {
	subtrees := float64(wp.number - wm.number)
	wp.change -= shift / subtrees
	wp.shift += shift
	wm.change += shift / subtrees
	wp.prelim += shift
	wp.mod += shift
}

func (w Walker) executeShifts(v *wnode) {
	var shift, change float64
	for i := len(v.children) - 1; i >= 0; i-- {
		c := v.children[i]
		c.prelim += shift
		c.mod += shift
		change += c.change
		shift += c.shift + change
	}
}

func (w Walker) secondWalk(v *wnode, modSum float64, pos *Positions) {
	if !v.virtual {
		pos.Set(v.id, Point{X: float64(v.level), Y: v.prelim + modSum})
	}
	for _, c := range v.children {
		w.secondWalk(c, modSum+v.mod, pos)
	}
}

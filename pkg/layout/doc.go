// Package layout assigns abstract coordinates to the nodes of a tree.
//
// # Algorithms
//
// An [Algorithm] maps a [tree.Tree] to [Positions]: for every visible node
// a column (its level) and a position along that column. Algorithms are
// registered by name and looked up case-insensitively with [Lookup]:
//
//	alg, err := layout.Lookup("Walker")
//	pos, err := alg.Compute(t, layout.Hints{})
//
// [Walker] is registered at init and is the default. Additional algorithms
// can be added with [Register] without touching the rest of the pipeline.
//
// # Walker
//
// The Walker layout produces tidy trees:
//
//   - Leaves occupy successive positions along their column
//   - Parents sit at the mean position of their children
//   - Adjacent nodes at the same depth are at least Hints.Distance apart
//   - A shifted subtree keeps its internal geometry
//
// It runs in linear time using threads along subtree contours and lazily
// propagated modifiers. Collapsed nodes are laid out as leaves and hidden
// nodes are skipped. Children wider than one level apart from their
// parent are bridged by temporary dummy nodes so each column holds a
// single depth. The root is placed at position 0.
//
// # Determinism
//
// Children are visited in input order and no map iteration influences the
// result, so identical trees always produce identical positions.
package layout

// Package tree builds the node arena a treegraph is laid out from.
//
// # Overview
//
// Input arrives as a flat, ordered list of [Record] values, each naming its
// parent by id. [Build] turns it into a [Tree]: an arena of [Node] values
// keyed by id, where children are ordered id lists and the parent is an id
// lookup. No node holds a pointer to another node, so parent/child cycles
// in the data can never become pointer cycles in memory.
//
// # Roots
//
// Records without a parent, and records whose parent id does not exist,
// are root candidates. A missing parent is reported as a MISSING_PARENT
// warning and the record becomes a candidate. [BuildOptions] decide which
// candidate is laid out:
//
//   - [RootFirst]: the first candidate in input order; the rest are orphans
//   - [RootSynthetic]: a virtual root adopts every candidate
//   - BuildOptions.RootID: an explicit node; everything else is orphaned
//
// # Errors
//
// Duplicate ids, invalid ids, cycles and an unknown RootID are fatal and
// no tree is returned. Cycles are found with an iterative depth-first walk
// that tracks the current root-to-leaf path, followed by a sweep for nodes
// no root reaches, which can only hang off a cycle.
//
// # Ordering
//
// [Tree.Order] and each Children slice preserve input order. Every
// algorithm in this module iterates those slices, never the Nodes map, so
// identical input produces identical output.
package tree

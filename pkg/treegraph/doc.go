// Package treegraph runs complete layout passes for one tree graph series.
//
// A [Series] holds the input records, the series options, the plot area and
// the interactive collapse state. Every mutation ([Series.SetData],
// [Series.SetOptions], [Series.Resize], [Series.Toggle],
// [Series.SetCollapsed] and [Series.RequestLayout]) runs one synchronous
// pass:
//
//  1. build the tree from records ([tree.Build])
//  2. resolve collapsed flags and derive hidden flags top-down
//  3. compute abstract positions with the configured [layout.Algorithm]
//  4. fit positions into the plot area ([render.ComputeModifiers])
//  5. place node shapes and fold hidden nodes onto their parents
//  6. build link paths between placed parents and children
//
// The pass result is published atomically: a fatal error leaves the
// previous [Result] in place and is returned to the caller. Recoverable
// conditions such as missing parents are reported in [Result.Warnings].
//
// # Notifications
//
// An [Observer] receives NodeUpdated for each node whose hidden flag changed
// and LayoutChanged for each published result. Callbacks may mutate the
// series; such mutations are queued until the running pass has finished.
package treegraph

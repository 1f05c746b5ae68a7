// Package render turns abstract layout positions into treegraph geometry.
//
// # Overview
//
// A layout pass hands this package the abstract (column, position) pair of
// every visible node. Rendering then runs three steps:
//
//   - [ComputeModifiers] derives one affine map per axis from all visible
//     nodes so the layout fills the plot area without clipping markers
//   - [PlaceNode] maps each node through the modifiers and builds its
//     marker shape; [PlaceHidden] folds hidden nodes onto their nearest
//     visible ancestor
//   - [LinkPath] connects placed parents and children with straight,
//     curved or orthogonal paths
//
// # Frames
//
// All geometry is computed in the series frame described by [Frame]:
// columns run along x and positions along y. Inverted charts swap the plot
// width and height, and the host maps the series frame onto the screen with
// [Frame.Transform]. Tooltip anchors are already expressed in screen
// coordinates. Reversed charts flip the level axis so the root sits at the
// opposite edge; see [Frame.FlipLevels].
//
// # Degenerate Axes
//
// When every visible node shares one coordinate on an axis (a single node,
// or a single chain) that axis keeps scale 1 and is centered in the plot
// area; no division by zero occurs.
package render

// Package path models vector path geometry for treegraph shapes.
//
// A [Path] is an ordered list of absolute [Command] values built from the
// constructors [Move], [Line] and [Cubic] ([Close] is only used by closed
// marker symbols). Paths serialize to an SVG d attribute with
// [Path.String] and to segment arrays such as ["M", 10, 0] with
// encoding/json, so the same value can feed an SVG writer or a JSON client.
//
// # Symbols
//
// [Symbol] builds the outline of a marker symbol (circle, square, rect,
// diamond, triangle, triangle-down) inside a bounding box. Circles are
// approximated with four cubic segments.
//
// # Corners
//
// [RoundCorners] turns a polyline into a path whose interior corners are
// rounded with a given radius, the shape used by orthogonal links.
//
// # Crisp Edges
//
// [Crisp] snaps coordinates to whole or half pixels depending on stroke
// width parity so thin lines render sharp:
//
//	x := path.Crisp(10.3, 1) // 10.5
package path

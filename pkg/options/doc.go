// Package options defines treegraph series options and their layered
// resolution.
//
// # Layers
//
// Marker and link styles are partial structs whose fields are pointers; a
// nil field is absent. A node's effective style is resolved field by field
// over a precedence list (point, level, series) followed by the defaults,
// and the first layer that sets a field wins:
//
//	m := options.ResolveMarker(record.Marker, level.Marker, series.Marker)
//	l := options.ResolveLink(record.Link, level.Link, series.Link)
//
// # Lengths
//
// Marker radius, width and height are [Length] values that decode from a
// number (pixels) or a percentage string such as "25%" in JSON, TOML and
// YAML.
//
// # Levels
//
// [Series.LevelFor] finds the per-depth overrides of a node. With
// levelIsConstant (the default) entries are keyed by absolute depth in the
// input; otherwise by depth below the rendered root.
//
// # Files
//
// [LoadFile] reads TOML, JSON or YAML option files and validates them.
package options

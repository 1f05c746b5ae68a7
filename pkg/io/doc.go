// Package io reads and writes tree graph records as JSON or YAML.
//
// # Formats
//
// Three document shapes are accepted on import. A bare array of records:
//
//	[
//	  {"id": "root"},
//	  {"id": "a", "parent": "root", "value": 3},
//	  {"id": "b", "parentId": "root", "collapsed": true}
//	]
//
// The same array under a "data" key, as in a chart series definition:
//
//	{"data": [{"id": "root"}, {"id": "a", "parent": "root"}]}
//
// Or a node/edge graph where every edge points from parent to child:
//
//	{
//	  "nodes": [{"id": "root"}, {"id": "a"}],
//	  "edges": [{"from": "root", "to": "a"}]
//	}
//
// "parentId" is accepted as an alias of "parent". A node with more than one
// incoming edge is rejected: records describe trees, not general graphs.
//
// YAML documents use the same keys.
//
// # Export
//
// [WriteJSON] and [WriteYAML] always write the bare array form, which
// re-imports to identical records.
package io

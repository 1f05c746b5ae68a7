// Package sink turns a computed treegraph pass into output formats.
//
// # Overview
//
// A "sink" consumes a [treegraph.Result] and writes it somewhere a person
// or another program can use it:
//
//   - SVG: the laid out chart, drawn with svgo
//   - JSON: the full pass geometry (node shapes, link paths, modifiers)
//   - DOT: a Graphviz description of the visible tree
//   - DOT-SVG: the DOT description rendered by Graphviz
//
// # SVG Output
//
// [RenderSVG] draws links first and nodes on top. Geometry is emitted in
// the series frame; inverted charts wrap it in a group carrying
// [render.Frame.Transform]. Labels are placed in screen coordinates so
// text is never rotated.
//
//	svg := sink.RenderSVG(result,
//	    sink.WithLabels(),
//	    sink.WithBackground("#ffffff"),
//	)
//
// # JSON Output
//
// [RenderJSON] writes the pass as a [Document]. Pass warnings are carried
// as messages.
//
// # DOT Output
//
// [ToDOT] emits only visible nodes and drawn links, so a collapsed chart
// exports the same tree it displays. [RenderDOTSVG] lays that description
// out with Graphviz, independently of the treegraph layout.
//
// [treegraph.Result]: github.com/erfan1375er/highcharts/pkg/treegraph.Result
// [render.Frame.Transform]: github.com/erfan1375er/highcharts/pkg/render.Frame.Transform
package sink

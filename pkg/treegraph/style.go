package treegraph

import (
	"github.com/erfan1375er/highcharts/pkg/options"
	"github.com/erfan1375er/highcharts/pkg/render"
	"github.com/erfan1375er/highcharts/pkg/tree"
)

type nodeStyle struct {
	node render.NodeStyle
	link options.ResolvedLink // style of the link into this node
}

// resolveStyles resolves the marker, color and incoming link style of every
// rendered node. Layers apply in the order point, level, series.
//
// Color: the record color, else the palette entry for the node's index
// within its level when the level sets colorByPoint, else the level color,
// else the series color.
func resolveStyles(t *tree.Tree, opts options.Series) map[string]nodeStyle {
	rendered := make(map[string]bool, t.Len())
	t.Walk(func(n *tree.Node) bool {
		rendered[n.ID] = !n.Virtual
		return true
	})

	palette := opts.Palette()
	perLevel := make(map[int]int)
	styles := make(map[string]nodeStyle, len(rendered))
	for _, id := range t.Order {
		if !rendered[id] {
			continue
		}
		n := t.Nodes[id]
		rec := n.Record

		var (
			levelMarker options.Marker
			levelLink   options.Link
			levelColor  string
			byPoint     bool
		)
		if lvl := opts.LevelFor(n.Depth, n.Level); lvl != nil {
			levelMarker, levelLink = lvl.Marker, lvl.Link
			byPoint = options.FirstBool(lvl.ColorByPoint)
			if lvl.Color != nil {
				levelColor = *lvl.Color
			}
		}
		idx := perLevel[n.Level]
		perLevel[n.Level]++

		color := rec.Color
		if color == "" && byPoint && len(palette) > 0 {
			color = palette[idx%len(palette)]
		}
		if color == "" {
			color = levelColor
		}
		if color == "" {
			color = opts.Color
		}
		if color == "" {
			color = options.DefaultColor
		}

		styles[id] = nodeStyle{
			node: render.NodeStyle{
				Marker: options.ResolveMarker(rec.Marker, levelMarker, opts.Marker),
				Color:  color,
			},
			link: options.ResolveLink(rec.Link, levelLink, opts.Link),
		}
	}
	return styles
}

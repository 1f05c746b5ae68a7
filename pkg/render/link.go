package render

import (
	"math"

	"github.com/erfan1375er/highcharts/pkg/options"
	"github.com/erfan1375er/highcharts/pkg/path"
)

// LinkShape is the geometry of the connector between a node and its parent.
type LinkShape struct {
	Index         int        `json:"index"`
	FromID        string     `json:"fromId"`
	ToID          string     `json:"toId"`
	ShapeType     string     `json:"shapeType"`
	Type          string     `json:"type"`
	Path          path.Path  `json:"path"`
	LabelAnchor   Box        `json:"labelAnchor"`
	TooltipAnchor path.Point `json:"tooltipAnchor"`
	StrokeColor   string     `json:"strokeColor"`
	StrokeWidth   float64    `json:"strokeWidth"`
	DashStyle     string     `json:"dashStyle,omitempty"`
}

// LinkPath connects the placed shapes of a parent and a child. The link
// leaves the parent at the middle of its right edge and enters the child at
// the middle of its left edge, or the other way round when
// [Frame.FlipLevels]. Coordinates are snapped with [path.Crisp].
//
// It reports false when either endpoint has no placed geometry or is
// hidden; such links are omitted from the pass.
func LinkPath(from, to *NodeShape, style options.ResolvedLink, f Frame) (LinkShape, bool) {
	if from == nil || to == nil || from.Hidden || to.Hidden {
		return LinkShape{}, false
	}

	lw := style.LineWidth
	y1 := path.Crisp(from.Y+from.Height/2, lw)
	y2 := path.Crisp(to.Y+to.Height/2, lw)
	x1 := path.Crisp(from.X+from.Width, lw)
	x2 := path.Crisp(to.X, lw)
	dir := 1.0
	if f.FlipLevels() {
		x1 -= from.Width
		x2 += to.Width
		dir = -1
	}

	colWidth := math.Abs(x2 - x1)

	var d path.Path
	switch style.Type {
	case options.LinkStraight:
		d = path.Path{path.Move(x1, y1), path.Line(x2, y2)}
	case options.LinkCurved:
		offset := colWidth * style.CurveFactor * dir
		d = path.Path{
			path.Move(x1, y1),
			path.Cubic(x1+offset, y1, x2-offset, y2, x2, y2),
		}
	default:
		xm := path.Crisp(x1+colWidth/2*dir, lw)
		d = path.RoundCorners([]path.Point{{X: x1, Y: y1}, {X: xm, Y: y1}, {X: xm, Y: y2}, {X: x2, Y: y2}}, style.Radius)
	}

	label := Box{X: (x1 + x2) / 2, Y: (y1 + y2) / 2, Width: 0, Height: lw}
	tip := f.ToScreen(label.X, label.Y)

	return LinkShape{
		FromID:        from.ID,
		ToID:          to.ID,
		ShapeType:     ShapePath,
		Type:          style.Type,
		Path:          d,
		LabelAnchor:   label,
		TooltipAnchor: tip,
		StrokeColor:   style.Color,
		StrokeWidth:   lw,
		DashStyle:     style.DashStyle,
	}, true
}

package render

import (
	"math"

	"github.com/erfan1375er/highcharts/pkg/path"
)

// Frame describes the plotting area the series is drawn into.
//
// Geometry is computed in the series frame: columns (levels) run along x
// and positions along y. When the chart is inverted the plot width and
// height swap roles (PlotSizeX is the plot height) and the host rotates the
// series frame onto the screen with [Frame.Transform].
type Frame struct {
	PlotSizeX float64 `json:"plotSizeX"`
	PlotSizeY float64 `json:"plotSizeY"`
	Inverted  bool    `json:"inverted"`
	Reversed  bool    `json:"reversed"`
}

// NewFrame returns the series frame for a plot area of the given size.
func NewFrame(plotWidth, plotHeight float64, inverted, reversed bool) Frame {
	f := Frame{PlotSizeX: plotWidth, PlotSizeY: plotHeight, Inverted: inverted, Reversed: reversed}
	if inverted {
		f.PlotSizeX, f.PlotSizeY = plotHeight, plotWidth
	}
	return f
}

// FlipLevels reports whether levels run from the far edge of the series
// frame's x axis. Inverting and reversing each flip it once.
func (f Frame) FlipLevels() bool { return f.Inverted != f.Reversed }

// PlotWidth returns the on-screen width of the plot area.
func (f Frame) PlotWidth() float64 {
	if f.Inverted {
		return f.PlotSizeY
	}
	return f.PlotSizeX
}

// PlotHeight returns the on-screen height of the plot area.
func (f Frame) PlotHeight() float64 {
	if f.Inverted {
		return f.PlotSizeX
	}
	return f.PlotSizeY
}

// Transform returns the SVG transform mapping the series frame onto the
// screen: empty for normal charts and a rotation plus mirror for inverted
// ones, so that series-frame (x, y) lands at (plotWidth-y, plotHeight-x).
func (f Frame) Transform() string {
	if !f.Inverted {
		return ""
	}
	return "matrix(0,-1,-1,0," + formatFloat(f.PlotWidth()) + "," + formatFloat(f.PlotHeight()) + ")"
}

// ToScreen maps a series-frame point to screen coordinates, applying the
// same mapping as [Frame.Transform].
func (f Frame) ToScreen(x, y float64) path.Point {
	if f.Inverted {
		return path.Point{X: f.PlotSizeY - y, Y: f.PlotSizeX - x}
	}
	return path.Point{X: x, Y: y}
}

// Modifiers is the affine map from abstract layout coordinates to series
// pixels: pixel = a*abstract + b, independently per axis.
type Modifiers struct {
	AX float64 `json:"ax"`
	BX float64 `json:"bx"`
	AY float64 `json:"ay"`
	BY float64 `json:"by"`
}

// Identity returns modifiers that leave coordinates unchanged.
func Identity() Modifiers { return Modifiers{AX: 1, AY: 1} }

// Apply maps an abstract coordinate to pixels.
func (m Modifiers) Apply(xPos, yPos float64) (x, y float64) {
	return m.AX*xPos + m.BX, m.AY*yPos + m.BY
}

// Extent is the abstract position and visual size of one visible node.
type Extent struct {
	XPosition, YPosition float64
	SizeX, SizeY         float64
	LineWidth            float64
}

// axisRange tracks the extremes of one axis and the largest footprint of
// the nodes sitting exactly at each extreme.
type axisRange struct {
	min, max         float64
	sizeMin, sizeMax float64
}

func newAxisRange() axisRange {
	return axisRange{min: math.Inf(1), max: math.Inf(-1)}
}

func (r *axisRange) add(pos, size float64) {
	switch {
	case pos < r.min:
		r.min, r.sizeMin = pos, size
	case pos == r.min:
		r.sizeMin = math.Max(r.sizeMin, size)
	}
	switch {
	case pos > r.max:
		r.max, r.sizeMax = pos, size
	case pos == r.max:
		r.sizeMax = math.Max(r.sizeMax, size)
	}
}

// scale solves a*min + b = sizeMin/2 and a*max + b = span - sizeMax/2.
// A degenerate axis keeps scale 1 and centers the single coordinate.
func (r axisRange) scale(span float64) (a, b float64) {
	if r.max == r.min {
		return 1, span/2 - r.min
	}
	a = (span - (r.sizeMin+r.sizeMax)/2) / (r.max - r.min)
	b = -a*r.min + r.sizeMin/2
	return a, b
}

// ComputeModifiers derives the modifiers of one pass from every visible
// node. With no nodes it returns [Identity].
func ComputeModifiers(items []Extent, plotSizeX, plotSizeY float64) Modifiers {
	if len(items) == 0 {
		return Identity()
	}
	xr, yr := newAxisRange(), newAxisRange()
	for _, it := range items {
		xr.add(it.XPosition, it.SizeX+it.LineWidth)
		yr.add(it.YPosition, it.SizeY+it.LineWidth)
	}
	var m Modifiers
	m.AX, m.BX = xr.scale(plotSizeX)
	m.AY, m.BY = yr.scale(plotSizeY)
	return m
}

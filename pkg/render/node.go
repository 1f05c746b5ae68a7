package render

import (
	"strconv"

	"github.com/erfan1375er/highcharts/pkg/layout"
	"github.com/erfan1375er/highcharts/pkg/options"
	"github.com/erfan1375er/highcharts/pkg/path"
)

// Shape types understood by the rendering collaborator.
const (
	ShapePath  = "path"
	ShapeImage = "image"
)

// Box is a top-left anchored rectangle in series pixels.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Y + b.Height/2 }

// NodeStyle is the resolved appearance of a node.
type NodeStyle struct {
	Marker options.ResolvedMarker
	Color  string
}

// NodeShape is the placed geometry of one node.
type NodeShape struct {
	ID            string     `json:"id"`
	Name          string     `json:"name,omitempty"`
	ShapeType     string     `json:"shapeType"`
	Symbol        string     `json:"symbol,omitempty"`
	Path          path.Path  `json:"path,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	X             float64    `json:"x"`
	Y             float64    `json:"y"`
	Width         float64    `json:"width"`
	Height        float64    `json:"height"`
	PlotX         float64    `json:"plotX"`
	PlotY         float64    `json:"plotY"`
	TooltipAnchor path.Point `json:"tooltipAnchor"`
	Collapsed     bool       `json:"collapsed"`
	Hidden        bool       `json:"hidden"`
	Level         int        `json:"level"`
	Value         float64    `json:"value"`
	Color         string     `json:"color,omitempty"`
	FillColor     string     `json:"fillColor,omitempty"`
	LineColor     string     `json:"lineColor,omitempty"`
	LineWidth     float64    `json:"lineWidth"`
	IsLeaf        bool       `json:"isLeaf"`
}

// Box returns the bounding box of the shape.
func (s NodeShape) Box() Box {
	return Box{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// NodeSize returns the footprint of a marker. Circles, and markers without
// an explicit height, are 2*radius square; the radius may be a percentage
// of the smaller plot side. Explicit sizes are percentages of their own
// axis.
func NodeSize(m options.ResolvedMarker, f Frame) (sizeX, sizeY float64) {
	r := m.Radius.Of(min(f.PlotSizeX, f.PlotSizeY))
	sizeX, sizeY = 2*r, 2*r
	if m.Symbol == path.SymbolCircle {
		return sizeX, sizeY
	}
	if m.Height != nil {
		sizeY = m.Height.Of(f.PlotSizeY)
	}
	if m.Width != nil {
		sizeX = m.Width.Of(f.PlotSizeX)
	}
	return sizeX, sizeY
}

// PlaceNode maps a node's abstract position through the modifiers and
// returns its shape. sizeX and sizeY come from [NodeSize].
func PlaceNode(id string, pos layout.Point, sizeX, sizeY float64, m Modifiers, f Frame, style NodeStyle) NodeShape {
	x, y := m.Apply(pos.X, pos.Y)
	w, h := sizeX, sizeY

	nodeX := x - w/2
	if f.FlipLevels() {
		nodeX = f.PlotSizeX - w/2 - x
	}
	nodeY := f.PlotSizeY - y - h/2

	s := newShape(id, Box{X: nodeX, Y: nodeY, Width: w, Height: h}, style)
	s.PlotX, s.PlotY = nodeX, nodeY
	s.TooltipAnchor = tooltipAnchor(s.Box(), f)
	return s
}

// PlaceHidden returns the shape of a hidden node folded onto the box of its
// nearest visible ancestor, the start frame of an expand animation.
func PlaceHidden(id string, anchor NodeShape, f Frame, style NodeStyle) NodeShape {
	s := newShape(id, anchor.Box(), style)
	s.PlotX, s.PlotY = anchor.PlotX, anchor.PlotY
	s.TooltipAnchor = tooltipAnchor(anchor.Box(), f)
	s.Hidden = true
	return s
}

func newShape(id string, b Box, style NodeStyle) NodeShape {
	mk := style.Marker
	s := NodeShape{
		ID:        id,
		X:         b.X,
		Y:         b.Y,
		Width:     b.Width,
		Height:    b.Height,
		Color:     style.Color,
		FillColor: firstNonEmpty(mk.FillColor, style.Color),
		LineColor: firstNonEmpty(mk.LineColor, style.Color),
		LineWidth: mk.LineWidth,
	}
	if u, ok := path.ImageURL(mk.Symbol); ok {
		s.ShapeType = ShapeImage
		s.ImageURL = u
		return s
	}
	s.ShapeType = ShapePath
	symbol := mk.Symbol
	if !path.IsSymbol(symbol) {
		symbol = path.SymbolCircle
	}
	s.Symbol = symbol
	s.Path, _ = path.Symbol(symbol, b.X, b.Y, b.Width, b.Height, mk.BorderRadius)
	return s
}

func tooltipAnchor(b Box, f Frame) path.Point {
	if f.Inverted {
		return f.ToScreen(b.CenterX(), b.CenterY())
	}
	return path.Point{X: b.CenterX(), Y: b.Y}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/erfan1375er/highcharts/pkg/render"
	"github.com/erfan1375er/highcharts/pkg/treegraph"
)

const (
	defaultLabelColor = "#333333"
	defaultFontSize   = 11
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	background string
	title      string
	fontSize   int
	labelColor string
}

// WithLabels draws each visible node's name, or its id when unnamed.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithBackground fills the canvas with color before drawing.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithTitle adds a <title> element to the document.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithFontSize sets the label font size in pixels.
func WithFontSize(px int) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.fontSize = px
		}
	}
}

// WithLabelColor sets the fill color of node labels.
func WithLabelColor(color string) SVGOption {
	return func(r *svgRenderer) {
		if color != "" {
			r.labelColor = color
		}
	}
}

// RenderSVG draws the pass. Hidden nodes are skipped. A nil result yields
// an empty canvas.
func RenderSVG(res *treegraph.Result, opts ...SVGOption) []byte {
	r := svgRenderer{fontSize: defaultFontSize, labelColor: defaultLabelColor}
	for _, opt := range opts {
		opt(&r)
	}
	if res == nil {
		res = &treegraph.Result{}
	}
	f := res.Frame

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	width, height := pixels(f.PlotWidth()), pixels(f.PlotHeight())
	canvas.Start(width, height)
	if r.title != "" {
		canvas.Title(r.title)
	}
	if r.background != "" {
		canvas.Rect(0, 0, width, height, attr("style", "fill:"+r.background))
	}

	if t := f.Transform(); t != "" {
		canvas.Gtransform(t)
	} else {
		canvas.Group()
	}
	renderLinks(canvas, res.Links)
	renderNodes(canvas, res.Nodes)
	canvas.Gend()

	if r.labels {
		renderLabels(canvas, res.Nodes, f, &r)
	}
	canvas.End()
	return buf.Bytes()
}

func renderLinks(canvas *svg.SVG, links []render.LinkShape) {
	canvas.Gid("links")
	for _, l := range links {
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", l.StrokeColor, num(l.StrokeWidth))
		if dash := dashArray(l.DashStyle, l.StrokeWidth); dash != "" {
			style += ";stroke-dasharray:" + dash
		}
		canvas.Path(l.Path.String(), attr("style", style),
			attr("class", "link link-"+l.Type),
			attr("data-from", l.FromID),
			attr("data-to", l.ToID))
	}
	canvas.Gend()
}

func renderNodes(canvas *svg.SVG, nodes []render.NodeShape) {
	canvas.Gid("nodes")
	for _, n := range nodes {
		if n.Hidden {
			continue
		}
		class := "node"
		if n.Collapsed {
			class += " node-collapsed"
		}
		if n.IsLeaf {
			class += " node-leaf"
		}
		id := attr("id", "node-"+n.ID)

		if n.ShapeType == render.ShapeImage {
			canvas.Image(pixels(n.X), pixels(n.Y), pixels(n.Width), pixels(n.Height), html.EscapeString(n.ImageURL), id, attr("class", class))
			continue
		}
		canvas.Path(n.Path.String(), attr("style", nodeStyle(n)), id, attr("class", class))
	}
	canvas.Gend()
}

func nodeStyle(n render.NodeShape) string {
	fill := n.FillColor
	if fill == "" {
		fill = n.Color
	}
	parts := []string{"fill:" + fill}
	if n.LineWidth > 0 {
		stroke := n.LineColor
		if stroke == "" {
			stroke = fill
		}
		parts = append(parts, "stroke:"+stroke, "stroke-width:"+num(n.LineWidth))
	}
	return strings.Join(parts, ";")
}

func renderLabels(canvas *svg.SVG, nodes []render.NodeShape, f render.Frame, r *svgRenderer) {
	canvas.Gid("labels")
	style := fmt.Sprintf("fill:%s;font-size:%dpx;font-family:system-ui,sans-serif;text-anchor:middle;dominant-baseline:middle",
		r.labelColor, r.fontSize)
	for _, n := range nodes {
		if n.Hidden {
			continue
		}
		text := n.Name
		if text == "" {
			text = n.ID
		}
		p := f.ToScreen(n.X+n.Width/2, n.Y+n.Height/2)
		canvas.Text(pixels(p.X), pixels(p.Y), text, attr("style", style))
	}
	canvas.Gend()
}

// attr formats an attribute for svgo. svgo writes any argument containing
// '=' verbatim, so every value is escaped here.
func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

func pixels(v float64) int { return int(math.Round(v)) }

func num(v float64) string { return fmt.Sprintf("%g", v) }

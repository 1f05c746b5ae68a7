package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/erfan1375er/highcharts/pkg/path"
	"github.com/erfan1375er/highcharts/pkg/render"
	"github.com/erfan1375er/highcharts/pkg/treegraph"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Detailed adds level and value lines to node labels.
	Detailed bool
}

var dotShapes = map[string]string{
	path.SymbolCircle:       "circle",
	path.SymbolSquare:       "square",
	path.SymbolRect:         "box",
	path.SymbolDiamond:      "diamond",
	path.SymbolTriangle:     "triangle",
	path.SymbolTriangleDown: "invtriangle",
}

func rankDir(res *treegraph.Result) string {
	if res == nil {
		return "LR"
	}
	switch f := res.Frame; {
	case f.Inverted && f.Reversed:
		return "BT"
	case f.Inverted:
		return "TB"
	case f.Reversed:
		return "RL"
	}
	return "LR"
}

// ToDOT describes the visible part of a pass in Graphviz DOT. Ranks follow
// the treegraph orientation: left to right, top to bottom when inverted,
// and mirrored when reversed. Collapsed nodes get a double outline.
func ToDOT(res *treegraph.Result, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankDir(res))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fontsize=12, fontname=\"sans-serif\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
	if res == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	for _, n := range res.Nodes {
		if n.Hidden {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, l := range res.Links {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.FromID, l.ToID, strings.Join(linkAttrs(l), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n render.NodeShape, detailed bool) string {
	label := n.Name
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nlevel: %d\nvalue: %g", label, n.Level, n.Value)
}

func nodeAttrs(n render.NodeShape, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n, detailed))}
	if shape, ok := dotShapes[n.Symbol]; ok {
		attrs = append(attrs, "shape="+shape)
	} else if n.ShapeType == render.ShapeImage {
		attrs = append(attrs, "shape=box", fmt.Sprintf("image=%q", n.ImageURL))
	}
	fill := n.FillColor
	if fill == "" {
		fill = n.Color
	}
	if fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	if n.LineColor != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", n.LineColor))
	}
	if n.Collapsed {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func linkAttrs(l render.LinkShape) []string {
	attrs := []string{fmt.Sprintf("color=%q", l.StrokeColor)}
	if l.StrokeWidth > 0 {
		attrs = append(attrs, "penwidth="+num(l.StrokeWidth))
	}
	if dashArray(l.DashStyle, 1) != "" {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element, whose pt based size
// and translated viewBox do not scale, with a plain pixel sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

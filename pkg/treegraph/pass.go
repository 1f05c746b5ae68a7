package treegraph

import (
	"fmt"
	"slices"
	"time"

	"github.com/erfan1375er/highcharts/pkg/errors"
	"github.com/erfan1375er/highcharts/pkg/layout"
	"github.com/erfan1375er/highcharts/pkg/options"
	"github.com/erfan1375er/highcharts/pkg/render"
	"github.com/erfan1375er/highcharts/pkg/tree"
)

// compute runs one full pass: build, visibility, layout, modifiers,
// placement and links. Nothing is published here.
func (s *Series) compute(st state) (*tree.Tree, *Result, error) {
	start := time.Now()

	policy, err := tree.ParseRootPolicy(st.opts.RootPolicy)
	if err != nil {
		return nil, nil, err
	}
	t, err := tree.Build(st.records, tree.BuildOptions{Policy: policy, RootID: st.opts.RootID})
	if err != nil {
		return nil, nil, err
	}
	alg, err := layout.Lookup(st.opts.Layout)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range t.Warnings {
		s.logger.Warn(errors.UserMessage(w), "code", errors.GetCode(w))
	}

	f := render.NewFrame(st.chart.PlotWidth, st.chart.PlotHeight, st.chart.Inverted, st.opts.Reversed)
	res := &Result{
		Modifiers: render.Identity(),
		Frame:     f,
		Warnings:  slices.Clone(t.Warnings),
		Root:      t.Root,
	}
	if !t.HasRoot() {
		s.logger.Debug("layout pass", "nodes", 0, "elapsed", time.Since(start))
		return t, res, nil
	}

	applyVisibility(t, st.opts, st.collapsed)

	pos, err := alg.Compute(t, layout.Hints{})
	if errors.IsFatal(err) {
		return nil, nil, fmt.Errorf("layout %s: %w", alg.Name(), err)
	}
	if err != nil {
		s.logger.Warn(errors.UserMessage(err), "code", errors.GetCode(err), "layout", alg.Name())
		res.Warnings = append(res.Warnings, err)
	}

	styles := resolveStyles(t, st.opts)

	extents := make([]render.Extent, 0, pos.Len())
	for _, id := range pos.IDs {
		n := t.Nodes[id]
		pt := pos.Points[id]
		n.XPosition, n.YPosition = pt.X, pt.Y
		n.SizeX, n.SizeY = render.NodeSize(styles[id].node.Marker, f)
		extents = append(extents, render.Extent{
			XPosition: pt.X,
			YPosition: pt.Y,
			SizeX:     n.SizeX,
			SizeY:     n.SizeY,
			LineWidth: styles[id].node.Marker.LineWidth,
		})
	}
	res.Modifiers = render.ComputeModifiers(extents, f.PlotSizeX, f.PlotSizeY)

	shapes, err := placeNodes(t, pos, res.Modifiers, f, styles)
	if err != nil {
		return nil, nil, err
	}

	for _, id := range t.Order {
		shape, ok := shapes[id]
		if !ok {
			continue
		}
		res.Nodes = append(res.Nodes, *shape)
		if !shape.Hidden {
			res.Visible++
		}
	}

	for _, id := range t.Order {
		parent := t.ParentOf(id)
		if parent == nil || parent.Virtual {
			continue
		}
		l, ok := render.LinkPath(shapes[parent.ID], shapes[id], styles[id].link, f)
		if !ok {
			s.logger.Debug("link skipped", "from", parent.ID, "to", id)
			continue
		}
		l.Index = len(res.Links)
		res.Links = append(res.Links, l)
	}

	s.logger.Debug("layout pass",
		"layout", alg.Name(),
		"nodes", len(res.Nodes),
		"visible", res.Visible,
		"links", len(res.Links),
		"elapsed", time.Since(start))
	return t, res, nil
}

// applyVisibility resolves each node's collapsed flag and derives hidden
// flags top-down: a node is hidden when its parent is hidden or collapsed.
//
// Collapsed precedence: interactive state, then the record, then the level
// options, then false.
func applyVisibility(t *tree.Tree, opts options.Series, interactive map[string]bool) {
	t.Walk(func(n *tree.Node) bool {
		if n.Virtual {
			n.Collapsed, n.Hidden = false, false
			return true
		}
		var state, level *bool
		if c, ok := interactive[n.ID]; ok {
			state = &c
		}
		if lvl := opts.LevelFor(n.Depth, n.Level); lvl != nil {
			level = lvl.Collapsed
		}
		n.Collapsed = options.FirstBool(state, n.Record.Collapsed, level)

		p := t.ParentOf(n.ID)
		n.Hidden = p != nil && (p.Hidden || p.Collapsed)
		return true
	})
}

// placeNodes places every positioned node and folds hidden nodes onto the
// shape of their parent, which preorder guarantees is already placed.
func placeNodes(t *tree.Tree, pos layout.Positions, m render.Modifiers, f render.Frame, styles map[string]nodeStyle) (map[string]*render.NodeShape, error) {
	shapes := make(map[string]*render.NodeShape, t.Len())
	var err error
	t.Walk(func(n *tree.Node) bool {
		if err != nil {
			return false
		}
		if n.Virtual {
			return true
		}

		var shape render.NodeShape
		if pt, ok := pos.Get(n.ID); ok {
			shape = render.PlaceNode(n.ID, pt, n.SizeX, n.SizeY, m, f, styles[n.ID].node)
		} else {
			p := t.ParentOf(n.ID)
			if !n.Hidden || p == nil || shapes[p.ID] == nil {
				err = errors.ForNode(errors.ErrCodeInternal, n.ID, "layout left visible node %q without a position", n.ID)
				return false
			}
			shape = render.PlaceHidden(n.ID, *shapes[p.ID], f, styles[n.ID].node)
		}
		shape.Name = n.Record.Name
		shape.Collapsed = n.Collapsed
		shape.Level = n.Level
		shape.Value = n.Value
		shape.IsLeaf = n.IsLeaf()
		n.X, n.Y = shape.X, shape.Y
		shapes[n.ID] = &shape
		return true
	})
	return shapes, err
}

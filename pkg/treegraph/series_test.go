package treegraph

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/erfan1375er/highcharts/pkg/errors"
	"github.com/erfan1375er/highcharts/pkg/layout"
	"github.com/erfan1375er/highcharts/pkg/options"
	"github.com/erfan1375er/highcharts/pkg/tree"
)

// balanced is a three-level tree with seven nodes.
func balanced() []tree.Record {
	return []tree.Record{
		{ID: "R"},
		{ID: "A", Parent: "R"},
		{ID: "B", Parent: "R"},
		{ID: "A1", Parent: "A"},
		{ID: "A2", Parent: "A"},
		{ID: "B1", Parent: "B"},
		{ID: "B2", Parent: "B"},
	}
}

func newSeries(t *testing.T, opts options.Series, obs Observer) *Series {
	t.Helper()
	s, err := New(opts, Chart{PlotWidth: 600, PlotHeight: 400}, nil, obs)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func loaded(t *testing.T, records []tree.Record) *Series {
	t.Helper()
	s := newSeries(t, options.Series{}, nil)
	if err := s.SetData(records); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}
	return s
}

func hiddenIDs(r *Result) []string {
	var ids []string
	for _, n := range r.Nodes {
		if n.Hidden {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func TestSeriesExpanded(t *testing.T) {
	s := loaded(t, balanced())
	r := s.Result()

	if len(r.Nodes) != 7 || r.Visible != 7 {
		t.Fatalf("nodes = %d visible = %d, want 7 and 7", len(r.Nodes), r.Visible)
	}
	for i, id := range []string{"R", "A", "B", "A1", "A2", "B1", "B2"} {
		if r.Nodes[i].ID != id {
			t.Errorf("Nodes[%d] = %s, want %s (input order)", i, r.Nodes[i].ID, id)
		}
	}

	wantLinks := [][2]string{{"R", "A"}, {"R", "B"}, {"A", "A1"}, {"A", "A2"}, {"B", "B1"}, {"B", "B2"}}
	if len(r.Links) != len(wantLinks) {
		t.Fatalf("links = %d, want %d", len(r.Links), len(wantLinks))
	}
	for i, l := range r.Links {
		if l.Index != i || l.FromID != wantLinks[i][0] || l.ToID != wantLinks[i][1] {
			t.Errorf("Links[%d] = %d %s->%s, want %s->%s", i, l.Index, l.FromID, l.ToID, wantLinks[i][0], wantLinks[i][1])
		}
	}
	if r.Root != "R" {
		t.Errorf("Root = %q, want R", r.Root)
	}
}

func TestSeriesCollapsedRoot(t *testing.T) {
	s := loaded(t, balanced())
	if err := s.SetCollapsed("R", true); err != nil {
		t.Fatalf("SetCollapsed() error: %v", err)
	}
	r := s.Result()

	if r.Visible != 1 || len(r.Links) != 0 {
		t.Fatalf("visible = %d links = %d, want 1 and 0", r.Visible, len(r.Links))
	}
	root, _ := r.Node("R")
	if !root.Collapsed || root.Hidden {
		t.Errorf("root collapsed=%v hidden=%v", root.Collapsed, root.Hidden)
	}
	if root.Box().CenterX() != 300 || root.Box().CenterY() != 200 {
		t.Errorf("single node center = (%v, %v), want plot center", root.Box().CenterX(), root.Box().CenterY())
	}
	for _, n := range r.Nodes[1:] {
		if !n.Hidden || n.Box() != root.Box() {
			t.Errorf("%s hidden=%v box=%+v, want folded onto root", n.ID, n.Hidden, n.Box())
		}
	}
}

func TestSeriesCollapseRoundTrip(t *testing.T) {
	s := loaded(t, balanced())
	before := s.Result()

	if err := s.Toggle("A"); err != nil {
		t.Fatalf("Toggle() error: %v", err)
	}
	mid := s.Result()
	if mid.Visible != 5 || len(mid.Links) != 4 {
		t.Errorf("collapsed: visible = %d links = %d, want 5 and 4", mid.Visible, len(mid.Links))
	}
	if got := hiddenIDs(mid); !reflect.DeepEqual(got, []string{"A1", "A2"}) {
		t.Errorf("hidden = %v, want [A1 A2]", got)
	}
	a, _ := mid.Node("A")
	a1, _ := mid.Node("A1")
	if a1.Box() != a.Box() {
		t.Errorf("A1 box = %+v, want A's box %+v", a1.Box(), a.Box())
	}

	if err := s.Toggle("A"); err != nil {
		t.Fatalf("Toggle() error: %v", err)
	}
	if after := s.Result(); !reflect.DeepEqual(before, after) {
		t.Error("collapse then expand did not restore the original result")
	}
}

func TestSeriesExpandStopsAtCollapsedDescendant(t *testing.T) {
	records := balanced()
	records[1].Collapsed = options.Bool(true) // A
	s := loaded(t, records)

	if err := s.SetCollapsed("R", true); err != nil {
		t.Fatal(err)
	}
	if got := s.Result().Visible; got != 1 {
		t.Fatalf("visible = %d, want 1", got)
	}
	if err := s.SetCollapsed("R", false); err != nil {
		t.Fatal(err)
	}
	r := s.Result()
	if got := hiddenIDs(r); !reflect.DeepEqual(got, []string{"A1", "A2"}) {
		t.Errorf("hidden = %v, want A's children only", got)
	}
}

func TestSeriesIdempotent(t *testing.T) {
	s := loaded(t, balanced())
	first := s.Result()
	if err := s.RequestLayout(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, s.Result()) {
		t.Error("two passes over unchanged input differ")
	}
}

func TestSeriesCollapsePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		record   *bool // collapsed flag on A
		level    *bool // collapsed flag on level 1
		override *bool // interactive state of A
		want     []string
	}{
		{"nothing set", nil, nil, nil, nil},
		{"record", options.Bool(true), nil, nil, []string{"A1", "A2"}},
		{"level", nil, options.Bool(true), nil, []string{"A1", "A2", "B1", "B2"}},
		{"record beats level", options.Bool(false), options.Bool(true), nil, []string{"B1", "B2"}},
		{"interactive beats level", nil, options.Bool(true), options.Bool(false), []string{"B1", "B2"}},
		{"interactive beats record", options.Bool(true), nil, options.Bool(false), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := balanced()
			records[1].Collapsed = tt.record
			var opts options.Series
			if tt.level != nil {
				opts.Levels = []options.Level{{Level: 1, Collapsed: tt.level}}
			}
			s := newSeries(t, opts, nil)
			if err := s.SetData(records); err != nil {
				t.Fatal(err)
			}
			if tt.override != nil {
				if err := s.SetCollapsed("A", *tt.override); err != nil {
					t.Fatal(err)
				}
			}
			if got := hiddenIDs(s.Result()); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("hidden = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeriesInteractiveStateSurvivesSetData(t *testing.T) {
	s := loaded(t, balanced())
	if err := s.SetCollapsed("B", true); err != nil {
		t.Fatal(err)
	}
	records := append(balanced(), tree.Record{ID: "B3", Parent: "B"})
	if err := s.SetData(records); err != nil {
		t.Fatal(err)
	}
	if got := hiddenIDs(s.Result()); !reflect.DeepEqual(got, []string{"B1", "B2", "B3"}) {
		t.Errorf("hidden = %v, want B's children", got)
	}
}

type recorder struct {
	updates []string
	layouts int
}

func (r *recorder) NodeUpdated(id string, hidden bool) {
	state := "shown"
	if hidden {
		state = "hidden"
	}
	r.updates = append(r.updates, id+" "+state)
}

func (r *recorder) LayoutChanged(*Result) { r.layouts++ }

func TestSeriesObserver(t *testing.T) {
	rec := &recorder{}
	s := newSeries(t, options.Series{}, rec)
	if err := s.SetData(balanced()); err != nil {
		t.Fatal(err)
	}
	if len(rec.updates) != 0 || rec.layouts != 1 {
		t.Fatalf("after SetData: updates=%v layouts=%d", rec.updates, rec.layouts)
	}

	if err := s.Toggle("A"); err != nil {
		t.Fatal(err)
	}
	if err := s.Toggle("A"); err != nil {
		t.Fatal(err)
	}
	want := []string{"A1 hidden", "A2 hidden", "A1 shown", "A2 shown"}
	if !reflect.DeepEqual(rec.updates, want) {
		t.Errorf("updates = %v, want %v", rec.updates, want)
	}
	if rec.layouts != 3 {
		t.Errorf("layouts = %d, want 3", rec.layouts)
	}
}

func TestSeriesQueuesReentrantMutation(t *testing.T) {
	var s *Series
	layouts := 0
	obs := ObserverFuncs{OnLayoutChanged: func(*Result) {
		layouts++
		if layouts == 1 {
			if err := s.Toggle("A"); err != nil {
				t.Errorf("queued Toggle() error: %v", err)
			}
			if s.Result().Visible != 7 {
				t.Error("queued mutation applied during the pass")
			}
		}
	}}
	s = newSeries(t, options.Series{}, obs)
	if err := s.SetData(balanced()); err != nil {
		t.Fatal(err)
	}

	if layouts != 2 {
		t.Errorf("layouts = %d, want 2", layouts)
	}
	if got := s.Result().Visible; got != 5 {
		t.Errorf("visible = %d, want 5 after queued toggle", got)
	}
}

func TestSeriesFatalKeepsPrevious(t *testing.T) {
	s := loaded(t, balanced())
	prev := s.Result()

	cyclic := []tree.Record{{ID: "a", Parent: "b"}, {ID: "b", Parent: "a"}}
	err := s.SetData(cyclic)
	if !errors.Is(err, errors.ErrCodeCyclicStructure) {
		t.Fatalf("SetData(cyclic) error = %v, want CYCLIC_STRUCTURE", err)
	}
	if s.Result() != prev {
		t.Error("result replaced after a failed pass")
	}
	if len(s.Records()) != 7 {
		t.Errorf("records = %d, want previous data kept", len(s.Records()))
	}

	err = s.SetOptions(options.Series{Layout: "Radial"})
	if !errors.Is(err, errors.ErrCodeUnknownLayout) {
		t.Fatalf("SetOptions() error = %v, want UNKNOWN_LAYOUT", err)
	}
	if s.Result() != prev || s.Options().Layout != options.DefaultLayout {
		t.Error("failed options change was kept")
	}

	if err := s.Toggle("A"); err != nil {
		t.Errorf("series unusable after failed passes: %v", err)
	}
}

func TestSeriesNotFound(t *testing.T) {
	s := newSeries(t, options.Series{}, nil)
	if err := s.Toggle("A"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Toggle() before data = %v, want NOT_FOUND", err)
	}
	if err := s.SetData(balanced()); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCollapsed("nope", true); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("SetCollapsed(unknown) = %v, want NOT_FOUND", err)
	}
}

func TestSeriesMissingParent(t *testing.T) {
	records := []tree.Record{{ID: "A"}, {ID: "X", Parent: "Y"}}

	t.Run("synthetic root", func(t *testing.T) {
		s := newSeries(t, options.Series{RootPolicy: options.RootPolicySynthetic}, nil)
		if err := s.SetData(records); err != nil {
			t.Fatalf("SetData() error: %v", err)
		}
		r := s.Result()
		if r.Visible != 2 || len(r.Links) != 0 || r.Root != tree.VirtualRootID {
			t.Errorf("visible=%d links=%d root=%q", r.Visible, len(r.Links), r.Root)
		}
		if len(r.Warnings) != 1 || !errors.Is(r.Warnings[0], errors.ErrCodeMissingParent) {
			t.Errorf("warnings = %v, want one MISSING_PARENT", r.Warnings)
		}
	})

	t.Run("first root", func(t *testing.T) {
		s := newSeries(t, options.Series{}, nil)
		if err := s.SetData(records); err != nil {
			t.Fatalf("SetData() error: %v", err)
		}
		r := s.Result()
		if r.Visible != 1 || r.Root != "A" {
			t.Errorf("visible=%d root=%q, want 1 and A", r.Visible, r.Root)
		}
		if len(r.Warnings) != 2 || !errors.Is(r.Warnings[1], errors.ErrCodeOrphanedSubtree) {
			t.Errorf("warnings = %v, want MISSING_PARENT then ORPHANED_SUBTREE", r.WarningMessages())
		}
	})
}

func TestSeriesColors(t *testing.T) {
	records := balanced()
	records[5].Color = "#000000" // B1
	opts := options.Series{
		Colors: []string{"#111111", "#222222"},
		Levels: []options.Level{
			{Level: 1, ColorByPoint: options.Bool(true)},
			{Level: 2, Color: options.String("#ff0000")},
		},
	}
	s := newSeries(t, opts, nil)
	if err := s.SetData(records); err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"R":  options.DefaultColor,
		"A":  "#111111",
		"B":  "#222222",
		"A1": "#ff0000",
		"B1": "#000000",
	}
	for id, color := range want {
		n, _ := s.Result().Node(id)
		if n.Color != color || n.FillColor != color {
			t.Errorf("%s color = %q fill = %q, want %q", id, n.Color, n.FillColor, color)
		}
	}
}

func TestSeriesLinkOptionLayers(t *testing.T) {
	records := balanced()
	records[3].Link = options.Link{Type: options.String(options.LinkStraight)} // A1
	opts := options.Series{
		Link:   options.Link{Color: options.String("#999999")},
		Levels: []options.Level{{Level: 2, Link: options.Link{Type: options.String(options.LinkDefault)}}},
	}
	s := newSeries(t, opts, nil)
	if err := s.SetData(records); err != nil {
		t.Fatal(err)
	}

	want := map[string]string{"A": options.LinkCurved, "A1": options.LinkStraight, "A2": options.LinkDefault}
	for _, l := range s.Result().Links {
		if typ, ok := want[l.ToID]; ok && l.Type != typ {
			t.Errorf("link to %s type = %q, want %q", l.ToID, l.Type, typ)
		}
		if l.StrokeColor != "#999999" {
			t.Errorf("link to %s color = %q, want series color", l.ToID, l.StrokeColor)
		}
	}
}

func TestSeriesResize(t *testing.T) {
	s := loaded(t, balanced())
	// Three columns, 20px markers at both extremes.
	if got := s.Result().Modifiers.AX; got != 290 {
		t.Errorf("AX = %v, want 290", got)
	}
	if err := s.Resize(800, 400); err != nil {
		t.Fatal(err)
	}
	if got := s.Result().Modifiers.AX; got != 390 {
		t.Errorf("AX after resize = %v, want 390", got)
	}
	if err := s.Resize(0, 400); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Resize(0, 400) = %v, want INVALID_INPUT", err)
	}
}

func TestSeriesInverted(t *testing.T) {
	s, err := New(options.Series{}, Chart{PlotWidth: 600, PlotHeight: 400, Inverted: true}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetData(balanced()); err != nil {
		t.Fatal(err)
	}
	r := s.Result()
	// Columns run along the 400px side when inverted.
	if r.Modifiers.AX != 190 {
		t.Errorf("AX = %v, want 190", r.Modifiers.AX)
	}
	root, _ := r.Node("R")
	leaf, _ := r.Node("A1")
	if leaf.X >= root.X {
		t.Errorf("inverted leaf x %v should be left of root x %v", leaf.X, root.X)
	}
}

func TestSeriesEmpty(t *testing.T) {
	s := loaded(t, nil)
	r := s.Result()
	if r == nil || len(r.Nodes) != 0 || len(r.Links) != 0 || r.Visible != 0 {
		t.Errorf("empty result = %+v", r)
	}
	if r.Modifiers.AX != 1 || r.Modifiers.AY != 1 {
		t.Errorf("modifiers = %+v, want identity", r.Modifiers)
	}
}

func TestSeriesReversedMirrorsLevels(t *testing.T) {
	records := []tree.Record{{ID: "A"}, {ID: "B", Parent: "A"}, {ID: "C", Parent: "A"}}
	chart := Chart{PlotWidth: 400, PlotHeight: 300}

	tests := []struct {
		name     string
		chart    Chart
		reversed bool
	}{
		{"normal", chart, false},
		{"reversed", chart, true},
		{"inverted", Chart{PlotWidth: 400, PlotHeight: 300, Inverted: true}, false},
		{"inverted reversed", Chart{PlotWidth: 400, PlotHeight: 300, Inverted: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, err := New(options.Series{}, tt.chart, nil, nil)
			if err != nil {
				t.Fatal(err)
			}
			mirrored, err := New(options.Series{Reversed: tt.reversed}, tt.chart, nil, nil)
			if err != nil {
				t.Fatal(err)
			}
			if err := plain.SetData(records); err != nil {
				t.Fatal(err)
			}
			if err := mirrored.SetData(records); err != nil {
				t.Fatal(err)
			}

			for _, id := range []string{"A", "B", "C"} {
				p, _ := plain.Result().Node(id)
				m, _ := mirrored.Result().Node(id)
				wantX := p.X
				if tt.reversed {
					wantX = mirrored.Result().Frame.PlotSizeX - p.X - p.Width
				}
				if math.Abs(m.X-wantX) > 1e-9 || m.Y != p.Y {
					t.Errorf("%s box = (%v, %v), want (%v, %v)", id, m.X, m.Y, wantX, p.Y)
				}
			}

			root, _ := mirrored.Result().Node("A")
			child, _ := mirrored.Result().Node("B")
			rootFar := root.X > child.X
			if rootFar != mirrored.Result().Frame.FlipLevels() {
				t.Errorf("root x %v child x %v, FlipLevels %v", root.X, child.X, mirrored.Result().Frame.FlipLevels())
			}
		})
	}
}

func TestSeriesRejectsInvalidRecordOptions(t *testing.T) {
	s := loaded(t, balanced())
	before := s.Result()

	bogus := "bogus"
	records := balanced()
	records[2].Marker.Symbol = &bogus
	err := s.SetData(records)
	if !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Fatalf("SetData() error = %v, want INVALID_OPTION", err)
	}
	if s.Result() != before {
		t.Error("failed SetData replaced the published result")
	}

	records = balanced()
	records[2].Color = `red" onmouseover="alert(2)`
	if err := s.SetData(records); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("SetData() with quoted color = %v, want INVALID_OPTION", err)
	}
}

// partialLayout wraps Walker and reports a fixed error alongside its
// positions.
type partialLayout struct {
	name string
	err  error
}

func (p partialLayout) Name() string { return p.name }

func (p partialLayout) Compute(t *tree.Tree, hints layout.Hints) (layout.Positions, error) {
	pos, _ := layout.Walker{}.Compute(t, hints)
	return pos, p.err
}

func TestSeriesLayoutErrors(t *testing.T) {
	layout.Register(partialLayout{name: "partial-warning", err: errors.New(errors.ErrCodeOrphanedSubtree, "skipped a branch")})
	layout.Register(partialLayout{name: "partial-fatal", err: errors.New(errors.ErrCodeInternal, "broken")})

	s := newSeries(t, options.Series{Layout: "partial-warning"}, nil)
	if err := s.SetData(balanced()); err != nil {
		t.Fatalf("warning-coded layout error aborted the pass: %v", err)
	}
	res := s.Result()
	if len(res.Nodes) != 7 {
		t.Errorf("nodes = %d, want 7", len(res.Nodes))
	}
	if len(res.Warnings) != 1 || !errors.Is(res.Warnings[0], errors.ErrCodeOrphanedSubtree) {
		t.Errorf("warnings = %v, want the layout warning", res.Warnings)
	}

	s = newSeries(t, options.Series{Layout: "partial-fatal"}, nil)
	if err := s.SetData(balanced()); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("SetData() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestSeriesSnapshotRestore(t *testing.T) {
	s := newSeries(t, options.Series{Reversed: true}, nil)
	if err := s.SetData(balanced()); err != nil {
		t.Fatal(err)
	}
	if err := s.Toggle("A"); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	restored, err := Restore(decoded, nil, nil)
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if got, want := hiddenIDs(restored.Result()), hiddenIDs(s.Result()); !reflect.DeepEqual(got, want) {
		t.Errorf("hidden = %v, want %v", got, want)
	}
	for _, n := range s.Result().Nodes {
		r, ok := restored.Result().Node(n.ID)
		if !ok || r.X != n.X || r.Y != n.Y {
			t.Errorf("node %s = %+v, want (%v, %v)", n.ID, r, n.X, n.Y)
		}
	}
	if err := restored.Toggle("A"); err != nil {
		t.Fatal(err)
	}
	if len(hiddenIDs(restored.Result())) != 0 {
		t.Error("toggling the restored series should expand A")
	}

	snap.Collapsed["gone"] = true
	restored, err = Restore(snap, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := restored.Snapshot().Collapsed["gone"]; ok {
		t.Error("collapse state for unknown ids should be dropped")
	}

	empty, err := Restore(Snapshot{Chart: Chart{PlotWidth: 10, PlotHeight: 10}}, nil, nil)
	if err != nil || empty.Result() != nil {
		t.Errorf("empty snapshot: result %v, err %v", empty.Result(), err)
	}
}

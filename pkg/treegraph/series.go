package treegraph

import (
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/erfan1375er/highcharts/pkg/errors"
	"github.com/erfan1375er/highcharts/pkg/options"
	"github.com/erfan1375er/highcharts/pkg/render"
	"github.com/erfan1375er/highcharts/pkg/tree"
)

// Chart describes the plot area a series is drawn into.
type Chart struct {
	PlotWidth  float64 `json:"plotWidth"`
	PlotHeight float64 `json:"plotHeight"`
	Inverted   bool    `json:"inverted,omitempty"`
}

// Validate checks that the plot area is usable.
func (c Chart) Validate() error {
	if c.PlotWidth <= 0 || c.PlotHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "plot size must be positive, got %gx%g", c.PlotWidth, c.PlotHeight)
	}
	return nil
}

// Result is the published output of one layout pass.
type Result struct {
	Nodes     []render.NodeShape `json:"nodes"`
	Links     []render.LinkShape `json:"links"`
	Modifiers render.Modifiers   `json:"modifiers"`
	Frame     render.Frame       `json:"frame"`
	Warnings  []error            `json:"-"`
	Root      string             `json:"root"`
	Visible   int                `json:"visible"`
}

// Node returns the shape of the node with the given id.
func (r *Result) Node(id string) (render.NodeShape, bool) {
	if r == nil {
		return render.NodeShape{}, false
	}
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return render.NodeShape{}, false
}

// WarningMessages returns the pass warnings as strings.
func (r *Result) WarningMessages() []string {
	if r == nil {
		return nil
	}
	msgs := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		msgs = append(msgs, w.Error())
	}
	return msgs
}

// state is everything a pass is computed from.
type state struct {
	records   []tree.Record
	opts      options.Series
	chart     Chart
	collapsed map[string]bool // interactive collapse state by node id
}

func (st state) clone() state {
	st.collapsed = maps.Clone(st.collapsed)
	return st
}

// Series owns one treegraph: its records, options, interactive collapse
// state and the result of the last successful pass.
//
// Every mutation runs a full synchronous pass. A pass either publishes a
// complete result or fails; on failure the mutation is discarded and the
// previous result stays current. Mutations made from Observer callbacks
// are queued and applied after the running pass, followed by one more
// pass.
//
// A Series is not safe for concurrent use.
type Series struct {
	state    state
	logger   *log.Logger
	observer Observer

	tree    *tree.Tree
	result  *Result
	hidden  map[string]bool
	running bool
	pending []func(*state) error
}

// New creates a series. A nil logger discards output and a nil observer
// ignores notifications. No pass runs until data is set.
func New(opts options.Series, chart Chart, logger *log.Logger, observer Observer) (*Series, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := chart.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	opts.SetDefaults()
	return &Series{
		state: state{
			opts:      opts,
			chart:     chart,
			collapsed: make(map[string]bool),
		},
		logger:   logger,
		observer: observer,
		hidden:   make(map[string]bool),
	}, nil
}

// Result returns the last published result, or nil before the first
// successful pass.
func (s *Series) Result() *Result { return s.result }

// Tree returns the tree of the last published pass.
func (s *Series) Tree() *tree.Tree { return s.tree }

// Options returns the current series options with defaults applied.
func (s *Series) Options() options.Series { return s.state.opts }

// Chart returns the current plot area.
func (s *Series) Chart() Chart { return s.state.chart }

// Records returns a copy of the current input records.
func (s *Series) Records() []tree.Record { return slices.Clone(s.state.records) }

// SetData replaces the input records. Interactive collapse state is kept
// for ids that survive the change.
func (s *Series) SetData(records []tree.Record) error {
	records = slices.Clone(records)
	return s.update(func(st *state) error {
		st.records = records
		return nil
	})
}

// SetOptions replaces the series options.
func (s *Series) SetOptions(opts options.Series) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	opts.SetDefaults()
	return s.update(func(st *state) error {
		st.opts = opts
		return nil
	})
}

// SetChart replaces the plot area.
func (s *Series) SetChart(c Chart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.update(func(st *state) error {
		st.chart = c
		return nil
	})
}

// Resize changes the plot size and keeps the orientation.
func (s *Series) Resize(width, height float64) error {
	c := s.state.chart
	c.PlotWidth, c.PlotHeight = width, height
	return s.SetChart(c)
}

// Toggle flips the collapsed state of a node.
func (s *Series) Toggle(id string) error {
	return s.update(func(st *state) error {
		n, err := s.lookup(id)
		if err != nil {
			return err
		}
		cur, ok := st.collapsed[id]
		if !ok {
			cur = n.Collapsed
		}
		st.collapsed[id] = !cur
		return nil
	})
}

// SetCollapsed sets the collapsed state of a node. The interactive state
// overrides record and level options until the node leaves the data.
func (s *Series) SetCollapsed(id string, collapsed bool) error {
	return s.update(func(st *state) error {
		if _, err := s.lookup(id); err != nil {
			return err
		}
		st.collapsed[id] = collapsed
		return nil
	})
}

// RequestLayout runs a pass on unchanged input.
func (s *Series) RequestLayout() error {
	return s.update(func(*state) error { return nil })
}

func (s *Series) lookup(id string) (*tree.Node, error) {
	n := s.tree.Node(id)
	if n == nil || n.Virtual {
		return nil, errors.ForNode(errors.ErrCodeNotFound, id, "node %q not found", id)
	}
	return n, nil
}

// update applies a mutation and runs a pass, or queues the mutation when a
// pass is already running.
func (s *Series) update(fn func(*state) error) error {
	if s.running {
		s.pending = append(s.pending, fn)
		return nil
	}

	next := s.state.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.run(next); err != nil {
		return err
	}

	for len(s.pending) > 0 {
		queued := s.pending
		s.pending = nil
		next := s.state.clone()
		for _, fn := range queued {
			if err := fn(&next); err != nil {
				s.logger.Warn("queued update rejected", "err", err)
			}
		}
		if err := s.run(next); err != nil {
			return err
		}
	}
	return nil
}

// run computes a pass from st and publishes it on success.
func (s *Series) run(st state) error {
	s.running = true
	defer func() { s.running = false }()

	t, res, err := s.compute(st)
	if err != nil {
		s.logger.Debug("layout pass aborted", "err", err)
		return err
	}

	// Interactive state for ids that left the data is dropped.
	for id := range st.collapsed {
		if t.Node(id) == nil {
			delete(st.collapsed, id)
		}
	}

	s.state = st
	s.tree = t
	s.result = res
	s.publish(t, res)
	return nil
}

func (s *Series) publish(t *tree.Tree, res *Result) {
	hidden := make(map[string]bool, t.Len())
	var changed []string
	t.Walk(func(n *tree.Node) bool {
		if n.Virtual {
			return true
		}
		hidden[n.ID] = n.Hidden
		if s.hidden[n.ID] != n.Hidden {
			changed = append(changed, n.ID)
		}
		return true
	})
	s.hidden = hidden

	for _, id := range changed {
		s.observer.NodeUpdated(id, hidden[id])
	}
	s.observer.LayoutChanged(res)
}

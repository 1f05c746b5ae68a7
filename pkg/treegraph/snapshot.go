package treegraph

import (
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/erfan1375er/highcharts/pkg/options"
	"github.com/erfan1375er/highcharts/pkg/tree"
)

// Snapshot is the input a series computes its passes from. It is plain
// data and can be stored and later turned back into a series with
// [Restore].
type Snapshot struct {
	Records   []tree.Record   `json:"records"`
	Options   options.Series  `json:"options"`
	Chart     Chart           `json:"chart"`
	Collapsed map[string]bool `json:"collapsed,omitempty"` // interactive collapse state
}

// Snapshot returns a copy of the series input.
func (s *Series) Snapshot() Snapshot {
	return Snapshot{
		Records:   slices.Clone(s.state.records),
		Options:   s.state.opts,
		Chart:     s.state.chart,
		Collapsed: maps.Clone(s.state.collapsed),
	}
}

// Restore rebuilds a series from a snapshot and runs its first pass when
// the snapshot holds records. Collapse state for ids missing from the
// records is dropped.
func Restore(snap Snapshot, logger *log.Logger, observer Observer) (*Series, error) {
	s, err := New(snap.Options, snap.Chart, logger, observer)
	if err != nil {
		return nil, err
	}
	if len(snap.Collapsed) > 0 {
		s.state.collapsed = maps.Clone(snap.Collapsed)
	}
	if snap.Records == nil {
		return s, nil
	}
	if err := s.SetData(snap.Records); err != nil {
		return nil, err
	}
	return s, nil
}

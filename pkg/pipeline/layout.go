package pipeline

import (
	"fmt"

	"github.com/erfan1375er/highcharts/pkg/tree"
	"github.com/erfan1375er/highcharts/pkg/treegraph"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Layout builds a series over records and runs its layout pass with the
// requested collapse state applied. The returned series stays live, so
// callers can keep toggling nodes.
func Layout(records []tree.Record, opts Options) (*treegraph.Series, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	s, err := treegraph.New(opts.Series, opts.Chart(), opts.Logger, nil)
	if err != nil {
		return nil, err
	}
	if err := s.SetData(records); err != nil {
		return nil, err
	}
	for _, id := range opts.Collapse {
		if err := s.SetCollapsed(id, true); err != nil {
			return nil, fmt.Errorf("collapse %s: %w", id, err)
		}
	}
	return s, nil
}

// hashRecords returns the content hash of the input records.
func hashRecords(records []tree.Record) string {
	return hashJSON(records)
}

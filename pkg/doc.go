// Package pkg provides the core libraries for treegraph layout and rendering.
//
// # Overview
//
// Treegraph takes flat records that name their parent, builds a rooted
// tree, assigns every node an abstract position with the Walker algorithm,
// fits those positions into a plot area and produces node shapes and link
// paths ready for drawing. The pkg directory is organized into four areas:
//
//  1. Model: [tree] (records, building, cycle and orphan checks) and
//     [options] (series, level and per-point options)
//  2. Geometry: [layout] (layout algorithms), [render] (frames,
//     modifiers, node and link shapes) and [path] (path commands and
//     marker symbols)
//  3. Engine: [treegraph] (the live series with collapse state)
//  4. Host: [io] (record files), [sink] (SVG, JSON, DOT), [cache],
//     [session], [observability] and [pipeline] (layout, render, cache)
//
// # Architecture
//
// The typical data flow:
//
//	JSON/YAML records
//	         ↓
//	    [io] package (decode records)
//	         ↓
//	    [tree] package (build tree, collect warnings)
//	         ↓
//	    [layout] package (abstract positions)
//	         ↓
//	    [render] package (plot-space shapes and links)
//	         ↓
//	    [sink] package (SVG/JSON/DOT output)
//
// [treegraph] runs the middle three stages as one pass and republishes a
// result whenever data, options, size or collapse state change.
//
// # Quick Start
//
//	import (
//	    "github.com/erfan1375er/highcharts/pkg/io"
//	    "github.com/erfan1375er/highcharts/pkg/options"
//	    "github.com/erfan1375er/highcharts/pkg/sink"
//	    "github.com/erfan1375er/highcharts/pkg/treegraph"
//	)
//
//	records, _ := io.Import("org.json")
//	s, _ := treegraph.New(options.Defaults(), treegraph.Chart{PlotWidth: 800, PlotHeight: 600}, nil, nil)
//	_ = s.SetData(records)
//	_ = s.Toggle("engineering")
//	svg := sink.RenderSVG(s.Result(), sink.WithLabels())
//
// Or run everything through the cached pipeline:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, _ := runner.Execute(ctx, records, pipeline.Options{Formats: []string{"svg", "json"}})
//
// # Errors
//
// Errors carry a code from [errors]. Build problems that leave a usable
// tree (a missing parent, an orphaned subtree) are reported as warnings on
// the result; cycles and invalid options fail the pass and leave the last
// published result in place.
package pkg

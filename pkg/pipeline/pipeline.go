// Package pipeline provides the treegraph render pipeline shared by the CLI
// and the HTTP API.
//
// By centralizing this logic, both entry points lay out and render charts
// the same way and share one caching scheme.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: build a [treegraph.Series] from records, apply requested
//     collapse state and run a layout pass
//  2. Render: turn the pass into output artifacts (SVG, JSON, DOT, DOT-SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Width:   800,
//	    Height:  600,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, records, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	series, err := pipeline.Layout(records, opts)
//	artifacts, err := pipeline.Render(ctx, series.Result(), opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/erfan1375er/highcharts/pkg/cache"
	"github.com/erfan1375er/highcharts/pkg/errors"
	"github.com/erfan1375er/highcharts/pkg/options"
	"github.com/erfan1375er/highcharts/pkg/treegraph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default plot width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default plot height in pixels.
	DefaultHeight = 600.0
)

// Format constants for output formats.
const (
	FormatSVG    = "svg"
	FormatJSON   = "json"
	FormatDOT    = "dot"
	FormatDOTSVG = "dot-svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:    true,
	FormatJSON:   true,
	FormatDOT:    true,
	FormatDOTSVG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
	Inverted bool           `json:"inverted,omitempty"`
	Collapse []string       `json:"collapse,omitempty"` // node ids collapsed before rendering
	Series   options.Series `json:"options"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Labels     bool     `json:"labels,omitempty"`
	Background string   `json:"background,omitempty"`
	Title      string   `json:"title,omitempty"`
	FontSize   int      `json:"fontSize,omitempty"`   // label font size in pixels
	LabelColor string   `json:"labelColor,omitempty"` // label fill color
	Detailed   bool     `json:"detailed,omitempty"` // level and value lines in DOT labels
	Refresh    bool     `json:"refresh,omitempty"`  // bypass cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Pass is the computed layout pass.
	Pass *treegraph.Result

	// PassKey is the cache key of the pass; artifact keys derive from it.
	PassKey string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	VisibleCount int
	LinkCount    int
	WarningCount int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, json, dot, dot-svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	o.Series.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if err := o.Series.Validate(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	return o.Chart().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "font size must not be negative")
	}
	if err := errors.ValidateColor(o.Background); err != nil {
		return err
	}
	return errors.ValidateColor(o.LabelColor)
}

// Chart returns the plot area described by the options.
func (o *Options) Chart() treegraph.Chart {
	return treegraph.Chart{PlotWidth: o.Width, PlotHeight: o.Height, Inverted: o.Inverted}
}

// PassKeyOpts returns cache key options for a layout pass.
func (o *Options) PassKeyOpts() cache.PassKeyOpts {
	collapsed := slices.Clone(o.Collapse)
	slices.Sort(collapsed)
	return cache.PassKeyOpts{
		Width:       o.Width,
		Height:      o.Height,
		Inverted:    o.Inverted,
		OptionsHash: hashJSON(o.Series),
		Collapsed:   slices.Compact(collapsed),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Labels:     o.Labels,
		Background: o.Background,
		Title:      o.Title,
		FontSize:   o.FontSize,
		LabelColor: o.LabelColor,
		Detailed:   o.Detailed,
	}
}

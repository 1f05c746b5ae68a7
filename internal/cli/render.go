package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erfan1375er/highcharts/pkg/errors"
	"github.com/erfan1375er/highcharts/pkg/io"
	"github.com/erfan1375er/highcharts/pkg/layout"
	"github.com/erfan1375er/highcharts/pkg/options"
	"github.com/erfan1375er/highcharts/pkg/pipeline"
)

// stdoutPath makes a single-format render write to standard output.
const stdoutPath = "-"

// renderOpts holds the command-line flags shared by render and layout.
type renderOpts struct {
	output      string   // output file, base path for several formats, or "-"
	formats     []string // svg, json, dot, dot-svg
	width       float64  // plot width in pixels
	height      float64  // plot height in pixels
	inverted    bool     // roots at the top instead of the left
	reversed    bool     // mirror the level axis: roots at the far edge
	layout      string   // layout algorithm name
	linkType    string   // straight, curved, default
	collapse    []string // node ids collapsed before rendering
	optionsFile string   // TOML, JSON or YAML series options
	labels      bool     // draw node names in SVG output
	background  string   // SVG background color
	title       string   // SVG title element
	fontSize    int      // SVG label font size
	labelColor  string   // SVG label color
	detailed    bool     // level and value lines in DOT labels
	noCache     bool     // skip the artifact cache
	refresh     bool     // recompute artifacts even when cached
}

func defaultRenderOpts() renderOpts {
	return renderOpts{
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
	}
}

// addLayoutFlags registers the flags that shape a layout pass.
func addLayoutFlags(cmd *cobra.Command, opts *renderOpts, collapse *string) {
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "plot width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "plot height")
	cmd.Flags().BoolVar(&opts.inverted, "inverted", false, "draw roots at the top")
	cmd.Flags().BoolVar(&opts.reversed, "reversed", false, "draw roots at the far edge of the level axis")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "layout algorithm: "+strings.Join(layout.Names(), ", "))
	cmd.Flags().StringVar(&opts.linkType, "link-type", "", "link shape: curved (default), straight, default")
	cmd.Flags().StringVar(collapse, "collapse", "", "node ids to collapse (comma-separated)")
	cmd.Flags().StringVar(&opts.optionsFile, "options", "", "series options file (.toml, .json, .yaml)")
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr, collapseStr string
	opts := defaultRenderOpts()

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render records to SVG, JSON geometry or Graphviz DOT",
		Long: `Render lays out a tree of records and writes one file per requested format.

Input is a JSON or YAML file holding an array of {id, parent} records,
a {"data": [...]} wrapper, or a {"nodes": [...], "edges": [...]} document.`,
		Example: `  treegraph render org.json
  treegraph render org.yaml -f svg,json -o out/org --inverted
  treegraph render org.json --collapse eng,ops --options chart.toml -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			opts.collapse = parseList(collapseStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (single format), base path (several), or "-" for stdout`)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, dot-svg (comma-separated)")
	addLayoutFlags(cmd, &opts, &collapseStr)
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw node labels (svg)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (svg)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title (svg)")
	cmd.Flags().IntVar(&opts.fontSize, "font-size", 0, "label font size in pixels (svg)")
	cmd.Flags().StringVar(&opts.labelColor, "label-color", "", "label color (svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show level and value in node labels (dot)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

// pipelineOptions turns flags into pipeline options. Flags override values
// from the options file.
func (o renderOpts) pipelineOptions() (pipeline.Options, error) {
	var series options.Series
	if o.optionsFile != "" {
		s, err := options.LoadFile(o.optionsFile)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("load options: %w", err)
		}
		series = s
	}
	if o.reversed {
		series.Reversed = true
	}
	if o.layout != "" {
		if _, err := layout.Lookup(o.layout); err != nil {
			return pipeline.Options{}, err
		}
		series.Layout = o.layout
	}
	if o.linkType != "" {
		if err := options.ValidateLinkType(o.linkType); err != nil {
			return pipeline.Options{}, err
		}
		series.Link.Type = options.String(o.linkType)
	}

	return pipeline.Options{
		Width:      o.width,
		Height:     o.height,
		Inverted:   o.inverted,
		Collapse:   o.collapse,
		Series:     series,
		Formats:    o.formats,
		Labels:     o.labels,
		Background: o.background,
		Title:      o.title,
		FontSize:   o.fontSize,
		LabelColor: o.labelColor,
		Detailed:   o.detailed,
		Refresh:    o.refresh,
	}, nil
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	records, err := io.Import(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %d records from %s", len(records), input)

	popts, err := opts.pipelineOptions()
	if err != nil {
		return err
	}
	if opts.output == stdoutPath && len(opts.formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "writing to stdout needs exactly one format, got %d", len(opts.formats))
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input)+"...")
	spinner.Start()
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, records, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d nodes", result.Stats.NodeCount))

	if opts.output == stdoutPath {
		_, err := os.Stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	for _, msg := range result.Pass.WarningMessages() {
		printWarning("%s", msg)
	}
	printSuccess("Rendered %s", filepath.Base(input))
	printStats(result.Stats, result.CacheHit)

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	printNextStep("Collapse nodes interactively", "treegraph browse "+input)
	return nil
}

// =============================================================================
// Output Paths
// =============================================================================

var formatExt = map[string]string{
	pipeline.FormatSVG:    ".svg",
	pipeline.FormatJSON:   ".json",
	pipeline.FormatDOT:    ".dot",
	pipeline.FormatDOTSVG: ".dot.svg",
}

// outputPath returns where a format is written. With one format an explicit
// output is used as given; otherwise it is a base path that gets the
// format's extension, and an empty output derives the base from input.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	return basePath(output, input) + formatExt[format]
}

// basePath strips a known format extension from output, or the extension
// of input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range []string{".dot.svg", ".svg", ".json", ".dot"} {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

package pipeline

import (
	"context"
	"fmt"

	"github.com/erfan1375er/highcharts/pkg/sink"
	"github.com/erfan1375er/highcharts/pkg/treegraph"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, pass *treegraph.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(pass, buildSVGOptions(opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(pass)
		case FormatDOT, FormatDOTSVG:
			if dot == "" {
				dot = sink.ToDOT(pass, sink.DOTOptions{Detailed: opts.Detailed})
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = sink.RenderDOTSVG(ctx, dot)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.FontSize > 0 {
		svgOpts = append(svgOpts, sink.WithFontSize(opts.FontSize))
	}
	if opts.LabelColor != "" {
		svgOpts = append(svgOpts, sink.WithLabelColor(opts.LabelColor))
	}
	return svgOpts
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erfan1375er/highcharts/pkg/io"
	"github.com/erfan1375er/highcharts/pkg/pipeline"
	"github.com/erfan1375er/highcharts/pkg/sink"
)

// layoutCommand prints the computed geometry as JSON without going through
// the artifact cache.
func (c *CLI) layoutCommand() *cobra.Command {
	var collapseStr string
	opts := defaultRenderOpts()

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute node positions and link paths as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.collapse = parseList(collapseStr)
			opts.formats = []string{pipeline.FormatJSON}
			return runLayout(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	addLayoutFlags(cmd, &opts, &collapseStr)

	return cmd
}

func runLayout(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	records, err := io.Import(input)
	if err != nil {
		return err
	}
	popts, err := opts.pipelineOptions()
	if err != nil {
		return err
	}
	popts.Logger = logger

	prog := newProgress(logger)
	series, err := pipeline.Layout(records, popts)
	if err != nil {
		return err
	}
	pass := series.Result()
	prog.done(fmt.Sprintf("Laid out %d nodes", len(pass.Nodes)))
	for _, msg := range pass.WarningMessages() {
		logger.Warn(msg)
	}

	data, err := sink.RenderJSON(pass)
	if err != nil {
		return err
	}
	if opts.output == "" || opts.output == stdoutPath {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := writeArtifact(opts.output, data); err != nil {
		return err
	}
	printFile(opts.output)
	return nil
}

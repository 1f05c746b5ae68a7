package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/erfan1375er/highcharts/pkg/io"
	"github.com/erfan1375er/highcharts/pkg/pipeline"
)

func (c *CLI) browseCommand() *cobra.Command {
	var collapseStr string
	opts := defaultRenderOpts()

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Collapse and expand nodes interactively",
		Long: `Browse lays out the records and opens a terminal view of the visible nodes.
Space toggles the node under the cursor, w writes the current chart as SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.collapse = parseList(collapseStr)
			if opts.output == "" {
				opts.output = outputPath("", args[0], pipeline.FormatSVG, true)
			}

			records, err := io.Import(args[0])
			if err != nil {
				return err
			}
			popts, err := opts.pipelineOptions()
			if err != nil {
				return err
			}
			series, err := pipeline.Layout(records, popts)
			if err != nil {
				return err
			}
			for _, msg := range series.Result().WarningMessages() {
				printWarning("%s", msg)
			}

			final, err := tea.NewProgram(NewBrowseModel(series, opts.output)).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(BrowseModel); ok && fm.Saved > 0 {
				printSuccess("Saved chart")
				printFile(fm.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "SVG file written by w (default <input>.svg)")
	addLayoutFlags(cmd, &opts, &collapseStr)

	return cmd
}

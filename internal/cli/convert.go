package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/erfan1375er/highcharts/pkg/io"
	"github.com/erfan1375er/highcharts/pkg/tree"
)

// convertCommand rewrites a record file as a flat record array.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Normalize a record file to a JSON or YAML record array",
		Long: `Convert reads any supported record document (array, {"data": [...]} or
{"nodes", "edges"}), checks that it builds a tree, and writes it as a flat
array of records. The output format follows the output extension (.yaml,
.yml or JSON otherwise); "-" writes JSON to stdout.`,
		Example: `  treegraph convert graph.json org.yaml
  treegraph convert org.yaml -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]

			records, err := io.Import(input)
			if err != nil {
				return err
			}
			t, err := tree.Build(records, tree.BuildOptions{})
			if err != nil {
				return err
			}
			for _, w := range t.Warnings {
				printWarning("%v", w)
			}

			if output == stdoutPath {
				return io.WriteJSON(cmd.OutOrStdout(), records)
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
			if err := io.Export(output, records); err != nil {
				return err
			}
			printSuccess("Converted %d records", len(records))
			printFile(output)
			return nil
		},
	}
}

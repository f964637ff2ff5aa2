package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gstplayer/internal/propdiff"
	"gstplayer/internal/treefile"
)

func newDiffCommand() *cobra.Command {
	var jsonOutput bool
	var tableOutput bool

	cmd := &cobra.Command{
		Use:   "diff <current> <previous>",
		Short: "Print the property delta that would be forwarded",
		Long: "Compute the structural diff between two property trees. Each argument is a\n" +
			".json or .toml file, or an inline JSON object.",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := treefile.Resolve(args[0])
			if err != nil {
				return fmt.Errorf("load current tree: %w", err)
			}
			previous, err := treefile.Resolve(args[1])
			if err != nil {
				return fmt.Errorf("load previous tree: %w", err)
			}

			delta := propdiff.Diff(current, previous)
			if wantJSON(cmd, jsonOutput, tableOutput) {
				return writeJSON(cmd, delta)
			}

			out := cmd.OutOrStdout()
			changes := propdiff.Flatten(delta)
			if len(changes) == 0 {
				fmt.Fprintln(out, "No changes")
				return nil
			}
			rows := make([][]string, 0, len(changes))
			for _, change := range changes {
				rows = append(rows, []string{change.Key(), propdiff.FormatValue(change.Value)})
			}
			fmt.Fprintln(out, renderTable([]string{"Property", "Value"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON (default when stdout is not a terminal)")
	cmd.Flags().BoolVar(&tableOutput, "table", false, "Output a table even when stdout is not a terminal")
	cmd.MarkFlagsMutuallyExclusive("json", "table")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/rcalloway/timebill/internal/cli/formatter"
	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/export"
	"github.com/rcalloway/timebill/internal/importer"
	"github.com/spf13/cobra"
)

// newImportCmd previews a timesheet workbook or CSV: normalize it,
// show the rows and what a generation run over them would produce,
// but persist nothing.
func newImportCmd(app *App) *cobra.Command {
	var mapping, out string
	var seed int

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Preview a timesheet workbook or CSV without billing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colMap, err := importer.LoadMapping(mapping)
			if err != nil {
				return err
			}
			imported, err := importer.ImportFile(args[0], colMap)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatWeekRows(imported.Rows))
			if skipped := formatter.FormatSkipped(imported.Skipped); skipped != "" {
				fmt.Fprint(cmd.OutOrStdout(), skipped)
			}

			if seed > 0 {
				numbered, _ := derive.AssignNumbers(imported.Rows, seed)
				batch := derive.Aggregate(numbered)
				for _, agg := range batch.InvoicesInOrder() {
					totals := derive.ComputeTotals(agg)
					fmt.Fprintf(cmd.OutOrStdout(), "\n%s", formatter.FormatAggregate(agg, totals))
				}
			}

			if out != "" {
				if err := export.WriteSummary(out, imported.Rows); err != nil {
					return fmt.Errorf("writing summary workbook: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %d row(s) to %s\n", len(imported.Rows), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mapping, "mapping", "", "Column mapping YAML")
	cmd.Flags().IntVar(&seed, "seed", 0, "Preview invoice numbering from this seed")
	cmd.Flags().StringVar(&out, "out", "", "Write normalized rows to an .xlsx summary workbook")

	return cmd
}

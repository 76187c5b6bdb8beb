package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rcalloway/timebill/internal/cli/formatter"
	"github.com/rcalloway/timebill/internal/export"
	"github.com/rcalloway/timebill/internal/importer"
	"github.com/rcalloway/timebill/internal/service"
	"github.com/spf13/cobra"
)

func newInvoiceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Generate and manage invoices",
	}

	cmd.AddCommand(
		newInvoiceGenerateCmd(app),
		newInvoiceListCmd(app),
		newInvoiceInspectCmd(app),
		newInvoiceReviseCmd(app),
		newInvoiceRemoveCmd(app),
	)

	return cmd
}

func newInvoiceGenerateCmd(app *App) *cobra.Command {
	var week, input, mapping, exportDir string
	var seed int
	var review, manual bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate invoices for a week",
		Long: "Generate invoices from the week's stored timesheets, or from a " +
			"timesheet workbook/CSV given with --input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			weekEnding, err := time.Parse("2006-01-02", week)
			if err != nil {
				return fmt.Errorf("invalid week ending %q: %w", week, err)
			}
			if seed == 0 {
				seed = app.DefaultSeed
			}
			if seed <= 0 {
				return fmt.Errorf("seed must be positive, got %d", seed)
			}

			var result *service.GenerateResult
			switch {
			case manual:
				if !app.interactive() {
					return fmt.Errorf("--manual needs an interactive terminal")
				}
				rows, skipped, err := collectManualRows(app)
				if err != nil {
					return err
				}
				if formatted := formatter.FormatSkipped(skipped); formatted != "" {
					fmt.Fprint(cmd.OutOrStdout(), formatted)
				}
				for i := range rows {
					rows[i].WeekEnding = week
				}
				result, err = app.Invoices.GenerateFromRows(ctx, rows, seed, weekEnding)
				if err != nil {
					return err
				}
			case input != "":
				colMap, err := importer.LoadMapping(mapping)
				if err != nil {
					return err
				}
				imported, err := importer.ImportFile(input, colMap)
				if err != nil {
					return err
				}
				if skipped := formatter.FormatSkipped(imported.Skipped); skipped != "" {
					fmt.Fprint(cmd.OutOrStdout(), skipped)
				}
				for i := range imported.Rows {
					imported.Rows[i].WeekEnding = week
				}
				result, err = app.Invoices.GenerateFromRows(ctx, imported.Rows, seed, weekEnding)
				if err != nil {
					return err
				}
			default:
				result, err = app.Invoices.GenerateForWeek(ctx, weekEnding, seed)
				if err != nil {
					return err
				}
			}

			if review && app.interactive() {
				model := newReviewModel(result)
				if _, err := tea.NewProgram(model).Run(); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s", formatter.FormatGenerateResult(result))
			}

			if exportDir != "" {
				if err := exportInvoices(exportDir, result); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d workbook(s) to %s\n",
					len(result.Invoices), exportDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week ending date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&seed, "seed", 0, "Starting invoice number for jobs never billed before")
	cmd.Flags().StringVar(&input, "input", "", "Timesheet workbook (.xlsx) or CSV to bill instead of stored entries")
	cmd.Flags().StringVar(&mapping, "mapping", "", "Column mapping YAML for --input")
	cmd.Flags().StringVar(&exportDir, "export", "", "Directory to write one invoice workbook per invoice")
	cmd.Flags().BoolVar(&review, "review", false, "Review the batch interactively")
	cmd.Flags().BoolVar(&manual, "manual", false, "Enter timesheet rows interactively instead of reading stored entries")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}

func exportInvoices(dir string, result *service.GenerateResult) error {
	for _, gen := range result.Invoices {
		name := invoiceFileName(gen.Invoice.InvoiceNumber)
		path := filepath.Join(dir, name)
		if err := export.WriteInvoice(path, gen.Aggregate, gen.Totals); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func invoiceFileName(number string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, number)
	return "invoice-" + safe + ".xlsx"
}

func newInvoiceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			invoices, err := app.Invoices.List(context.Background())
			if err != nil {
				return err
			}
			if len(invoices) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No invoices found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatInvoiceList(invoices))
			return nil
		},
	}
}

func newInvoiceInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show an invoice with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			inv, err := resolveInvoice(ctx, app, args[0])
			if err != nil {
				return err
			}
			lines, err := app.Invoices.Lines(ctx, inv.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatInvoiceDetail(inv, lines))
			return nil
		},
	}
}

func newInvoiceReviseCmd(app *App) *cobra.Command {
	var total float64

	cmd := &cobra.Command{
		Use:   "revise ID",
		Short: "Create a revision of an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orig, err := resolveInvoice(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("total") {
				total = orig.TotalAmount
			}
			revised, err := app.Invoices.Revise(ctx, orig.ID, nil, total)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created revision %s (%s)\n",
				revised.InvoiceNumber, formatter.Money(revised.TotalAmount))
			return nil
		},
	}

	cmd.Flags().Float64Var(&total, "total", 0, "Revised total amount (default: original total)")

	return cmd
}

func newInvoiceRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			inv, err := resolveInvoice(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				var confirmed bool
				form := confirmForm(fmt.Sprintf("Remove invoice %s?", inv.InvoiceNumber), &confirmed)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Invoices.Delete(ctx, inv.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed invoice %s\n", inv.InvoiceNumber)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation")

	return cmd
}

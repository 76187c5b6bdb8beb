package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rcalloway/timebill/internal/cli/formatter"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/rcalloway/timebill/internal/export"
	"github.com/spf13/cobra"
)

func newTimesheetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Log and inspect timesheet entries",
	}

	cmd.AddCommand(
		newTimesheetLogCmd(app),
		newTimesheetListCmd(app),
		newTimesheetWeekCmd(app),
		newTimesheetRemoveCmd(app),
	)

	return cmd
}

func newTimesheetLogCmd(app *App) *cobra.Command {
	var employee, job, activity, date, payType string
	var hours float64

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a timesheet entry",
		Long:  "Log a timesheet entry. With no flags on an interactive terminal, a guided form is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// Bare invocation on a terminal launches the guided form.
			if employee == "" && job == "" && app.interactive() {
				return runTimesheetForm(ctx, app, cmd)
			}

			employeeID, err := resolveEmployeeID(ctx, app, employee)
			if err != nil {
				return err
			}
			jobID, err := resolveJobID(ctx, app, job)
			if err != nil {
				return err
			}

			entryDate := time.Now()
			if date != "" {
				entryDate, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
			}

			entry := &domain.TimesheetEntry{
				EmployeeID: employeeID,
				JobID:      jobID,
				ActivityID: activity,
				Date:       entryDate,
				Hours:      hours,
			}
			if payType != "" {
				pt, err := domain.ParsePayType(payType)
				if err != nil {
					return err
				}
				entry.PayType = pt
			}

			if err := app.Timesheets.Log(ctx, entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s hours on %s\n",
				formatter.Hours(entry.Hours), entry.Date.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "Employee (code, ID, or ID prefix)")
	cmd.Flags().StringVar(&job, "job", "", "Job (number, ID, or ID prefix)")
	cmd.Flags().StringVar(&activity, "activity", "", "Activity ID (optional)")
	cmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours worked")
	cmd.Flags().StringVar(&payType, "type", "", "Pay type (Regular|Overtime)")

	return cmd
}

func runTimesheetForm(ctx context.Context, app *App, cmd *cobra.Command) error {
	var v timesheetFormValues
	form, err := timesheetLogForm(ctx, app, &v)
	if err != nil {
		return err
	}
	if form == nil {
		return fmt.Errorf("add an employee and a job before logging time")
	}
	if err := form.Run(); err != nil {
		return err
	}

	// Activity selection depends on the chosen job, so it runs as a
	// second form.
	actForm, err := activitySelectForm(ctx, app, v.JobID, &v.ActivityID)
	if err != nil {
		return err
	}
	if actForm != nil {
		if err := actForm.Run(); err != nil {
			return err
		}
	}

	entryDate, err := time.Parse("2006-01-02", v.Date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", v.Date, err)
	}
	hours, err := strconv.ParseFloat(v.Hours, 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q: %w", v.Hours, err)
	}

	entry := &domain.TimesheetEntry{
		EmployeeID: v.EmployeeID,
		JobID:      v.JobID,
		ActivityID: v.ActivityID,
		Date:       entryDate,
		Hours:      hours,
		PayType:    domain.PayType(v.PayType),
	}
	if err := app.Timesheets.Log(ctx, entry); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged %s hours on %s\n",
		formatter.Hours(entry.Hours), entry.Date.Format("2006-01-02"))
	return nil
}

func newTimesheetListCmd(app *App) *cobra.Command {
	var employee string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an employee's timesheet entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			employeeID, err := resolveEmployeeID(ctx, app, employee)
			if err != nil {
				return err
			}
			entries, err := app.Timesheets.ListByEmployee(ctx, employeeID)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No timesheet entries found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatTimesheetList(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "Employee (code, ID, or ID prefix)")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}

func newTimesheetWeekCmd(app *App) *cobra.Command {
	var ending, out string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Preview the billable rows for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekEnding, err := time.Parse("2006-01-02", ending)
			if err != nil {
				return fmt.Errorf("invalid week ending %q: %w", ending, err)
			}

			rows, err := app.Timesheets.WeekDetails(context.Background(), weekEnding)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatWeekRows(rows))

			if out != "" {
				if err := export.WriteSummary(out, rows); err != nil {
					return fmt.Errorf("writing summary workbook: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d row(s) to %s\n", len(rows), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ending, "ending", "", "Week ending date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&out, "out", "", "Write the rows to an .xlsx summary workbook")
	_ = cmd.MarkFlagRequired("ending")

	return cmd
}

func newTimesheetRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a timesheet entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Timesheets.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed timesheet entry %s\n", args[0])
			return nil
		},
	}
}

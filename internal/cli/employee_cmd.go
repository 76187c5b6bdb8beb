package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rcalloway/timebill/internal/cli/formatter"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/spf13/cobra"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(app),
		newEmployeeListCmd(app),
		newEmployeeInspectCmd(app),
		newEmployeeUpdateCmd(app),
		newEmployeeRemoveCmd(app),
		newEmployeePayHistoryCmd(app),
		newEmployeeRateChangesCmd(app),
	)

	return cmd
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	var code, first, last string
	var regular, overtime float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.Employee{
				EECode:       code,
				FirstName:    first,
				LastName:     last,
				RegularRate:  regular,
				OvertimeRate: overtime,
			}
			if err := app.Employees.Create(context.Background(), e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created employee %s [%s]\n", e.FullName(), e.EECode)
			return nil
		},
	}

	addNameFlags(cmd.Flags(), &code, &first, &last)
	addRateFlags(cmd.Flags(), &regular, &overtime)
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")
	_ = cmd.MarkFlagRequired("regular")
	_ = cmd.MarkFlagRequired("overtime")

	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Employees.List(context.Background())
			if err != nil {
				return err
			}
			if len(employees) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No employees found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatEmployeeList(employees))
			return nil
		},
	}
}

func newEmployeeInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show employee details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Employees.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatEmployeeInspect(e))
			return nil
		},
	}
}

func newEmployeeUpdateCmd(app *App) *cobra.Command {
	var code, first, last string
	var regular, overtime float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Employees.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("code") {
				e.EECode = code
			}
			if cmd.Flags().Changed("first") {
				e.FirstName = first
			}
			if cmd.Flags().Changed("last") {
				e.LastName = last
			}
			if cmd.Flags().Changed("regular") {
				e.RegularRate = regular
			}
			if cmd.Flags().Changed("overtime") {
				e.OvertimeRate = overtime
			}

			if err := app.Employees.Update(ctx, e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated employee %s [%s]\n", e.FullName(), e.EECode)
			return nil
		},
	}

	addNameFlags(cmd.Flags(), &code, &first, &last)
	addRateFlags(cmd.Flags(), &regular, &overtime)

	return cmd
}

func newEmployeeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Employees.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed employee %s\n", id)
			return nil
		},
	}
}

func newEmployeePayHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pay-history ID",
		Short: "Show an employee's pay rate history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			entries, err := app.Employees.PayHistory(ctx, id)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pay history recorded.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatPayHistory(entries))
			return nil
		},
	}
}

func newEmployeeRateChangesCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "rate-changes",
		Short: "Report pay rate changes across employees in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse("2006-01-02", end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}

			changes, err := app.Employees.RateChanges(context.Background(), startDate, endDate)
			if err != nil {
				return err
			}
			if len(changes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No rate changes in this window.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatRateChanges(changes))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Window end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

package cli

import (
	"log/slog"

	"github.com/rcalloway/timebill/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Employees  service.EmployeeService
	Jobs       service.JobService
	Timesheets service.TimesheetService
	Invoices   service.InvoiceService

	Logger *slog.Logger

	// DefaultSeed is the starting invoice number used when --seed is
	// not given.
	DefaultSeed int

	// IsInteractive reports whether stdin is a terminal; interactive
	// forms are only offered when it returns true.
	IsInteractive func() bool
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// NewRootCmd creates the top-level "timebill" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timebill",
		Short:         "Timesheet aggregation and invoice generation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEmployeeCmd(app),
		newJobCmd(app),
		newTimesheetCmd(app),
		newInvoiceCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)

	return root
}

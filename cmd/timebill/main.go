package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	"github.com/mattn/go-isatty"
	"github.com/rcalloway/timebill/internal/cli"
	"github.com/rcalloway/timebill/internal/db"
	"github.com/rcalloway/timebill/internal/repository"
	"github.com/rcalloway/timebill/internal/service"
)

const defaultInvoiceSeed = 500

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.timebill/timebill.db
	dbPath := os.Getenv("TIMEBILL_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".timebill", "timebill.db")
	}

	seed := defaultInvoiceSeed
	if raw := os.Getenv("TIMEBILL_SEED"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return fmt.Errorf("invalid TIMEBILL_SEED %q", raw)
		}
		seed = v
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	jobRepo := repository.NewSQLiteJobRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)
	timesheetRepo := repository.NewSQLiteTimesheetRepo(database)
	invoiceRepo := repository.NewSQLiteInvoiceRepo(database)
	payHistoryRepo := repository.NewSQLitePayHistoryRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	app := &cli.App{
		Employees:  service.NewEmployeeService(employeeRepo, payHistoryRepo, uow),
		Jobs:       service.NewJobService(jobRepo, activityRepo),
		Timesheets: service.NewTimesheetService(timesheetRepo),
		Invoices: service.NewInvoiceService(invoiceRepo, timesheetRepo, uow,
			service.NewLogUseCaseObserver(os.Stderr)),

		Logger:      logger,
		DefaultSeed: seed,
	}

	// Detect interactive terminal for form-based entry.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

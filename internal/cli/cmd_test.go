package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rcalloway/timebill/internal/db"
	"github.com/rcalloway/timebill/internal/repository"
	"github.com/rcalloway/timebill/internal/service"
	"github.com/rcalloway/timebill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	employees := repository.NewSQLiteEmployeeRepo(database)
	jobs := repository.NewSQLiteJobRepo(database)
	activities := repository.NewSQLiteActivityRepo(database)
	timesheets := repository.NewSQLiteTimesheetRepo(database)
	invoices := repository.NewSQLiteInvoiceRepo(database)
	payHistory := repository.NewSQLitePayHistoryRepo(database)

	return &App{
		Employees:   service.NewEmployeeService(employees, payHistory, uow),
		Jobs:        service.NewJobService(jobs, activities),
		Timesheets:  service.NewTimesheetService(timesheets),
		Invoices:    service.NewInvoiceService(invoices, timesheets, uow),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		DefaultSeed: 500,
		// Forms never launch in tests.
		IsInteractive: func() bool { return false },
	}
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := execute(t, app, args...)
	require.NoError(t, err, out)
	return out
}

func TestEmployeeCommands(t *testing.T) {
	app := newTestApp(t)

	out := mustExecute(t, app, "employee", "add",
		"--code", "JD01", "--first", "Jane", "--last", "Doe",
		"--regular", "20", "--overtime", "30")
	assert.Contains(t, out, "Created employee Jane Doe [JD01]")

	out = mustExecute(t, app, "employee", "list")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "$20.00")

	out = mustExecute(t, app, "employee", "update", "JD01", "--regular", "25")
	assert.Contains(t, out, "Updated employee")

	out = mustExecute(t, app, "employee", "pay-history", "JD01")
	assert.Contains(t, out, "$20.00")
	assert.Contains(t, out, "$25.00")

	out = mustExecute(t, app, "employee", "rate-changes",
		"--start", "2020-01-01", "--end", "2100-01-01")
	assert.Contains(t, out, "Jane Doe")

	mustExecute(t, app, "employee", "remove", "JD01")
	out = mustExecute(t, app, "employee", "list")
	assert.Contains(t, out, "No employees found.")
}

func TestEmployeeCommands_Unknown(t *testing.T) {
	app := newTestApp(t)

	_, err := execute(t, app, "employee", "inspect", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee not found")
}

func TestJobCommands(t *testing.T) {
	app := newTestApp(t)

	mustExecute(t, app, "job", "add", "--number", "J-100", "--name", "Plant Upgrade", "--client", "Acme")
	mustExecute(t, app, "job", "activity", "add", "J-100", "--code", "010", "--description", "Framing")

	out := mustExecute(t, app, "job", "inspect", "J-100")
	assert.Contains(t, out, "J-100")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "010")
	assert.Contains(t, out, "Framing")

	out = mustExecute(t, app, "job", "update", "J-100", "--name", "Plant Rebuild")
	assert.Contains(t, out, "Plant Rebuild")
}

func TestInvoiceGenerateFlow(t *testing.T) {
	app := newTestApp(t)

	mustExecute(t, app, "employee", "add",
		"--code", "JD01", "--first", "Jane", "--last", "Doe",
		"--regular", "20", "--overtime", "30")
	mustExecute(t, app, "job", "add", "--number", "J-100", "--name", "Plant Upgrade")

	mustExecute(t, app, "timesheet", "log",
		"--employee", "JD01", "--job", "J-100", "--date", "2026-08-20", "--hours", "10")
	mustExecute(t, app, "timesheet", "log",
		"--employee", "JD01", "--job", "J-100", "--date", "2026-08-21", "--hours", "2",
		"--type", "Overtime")

	out := mustExecute(t, app, "timesheet", "week", "--ending", "2026-08-23")
	assert.Contains(t, out, "Jane Doe")

	out = mustExecute(t, app, "invoice", "generate", "--week", "2026-08-23", "--seed", "500")
	assert.Contains(t, out, "Invoice 500")
	assert.Contains(t, out, "$260.00")
	assert.Contains(t, out, "1 invoice(s)")

	out = mustExecute(t, app, "invoice", "revise", "500")
	assert.Contains(t, out, "500-Rev1")

	out = mustExecute(t, app, "invoice", "inspect", "500-Rev1")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "$260.00")

	out = mustExecute(t, app, "invoice", "list")
	assert.Contains(t, out, "500")
	assert.Contains(t, out, "500-Rev1")
}

func TestInvoiceGenerate_Export(t *testing.T) {
	app := newTestApp(t)

	mustExecute(t, app, "employee", "add",
		"--code", "JD01", "--first", "Jane", "--last", "Doe",
		"--regular", "20", "--overtime", "30")
	mustExecute(t, app, "job", "add", "--number", "J-100", "--name", "Plant Upgrade")
	mustExecute(t, app, "timesheet", "log",
		"--employee", "JD01", "--job", "J-100", "--date", "2026-08-20", "--hours", "8")

	dir := t.TempDir()
	out := mustExecute(t, app, "invoice", "generate",
		"--week", "2026-08-23", "--seed", "500", "--export", dir)
	assert.Contains(t, out, "Exported 1 workbook(s)")

	_, err := os.Stat(filepath.Join(dir, "invoice-500.xlsx"))
	require.NoError(t, err)
}

func TestImportCommand(t *testing.T) {
	app := newTestApp(t)

	csv := "First Name,Last Name,Job Name,Job Number,Activity Code,Activity Description,Pay Type,Hours,Burdened Rate\n" +
		"Jane,Doe,Plant Upgrade,J-100,010,Framing,Regular,10,20\n" +
		"Jane,Doe,Plant Upgrade,J-100,010,Framing,Overtime,2,30\n"
	path := filepath.Join(t.TempDir(), "week.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	out := mustExecute(t, app, "import", path, "--seed", "100")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Invoice 100")
	assert.Contains(t, out, "$260.00")
}

func TestInvoiceFileName(t *testing.T) {
	assert.Equal(t, "invoice-500.xlsx", invoiceFileName("500"))
	assert.Equal(t, "invoice-500-Rev1.xlsx", invoiceFileName("500-Rev1"))
	assert.Equal(t, "invoice-a_b.xlsx", invoiceFileName("a/b"))
}

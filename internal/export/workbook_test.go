package export

import (
	"path/filepath"
	"testing"

	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readGrid(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	grid, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	return grid
}

func TestWriteSummary_RoundTripsThroughImportLayout(t *testing.T) {
	rows := []derive.Row{
		{InvoiceNumber: "500", EmployeeName: "Jane Doe", JobName: "Plant Upgrade", JobNumber: "J-100",
			ActivityCode: "010", ActivityDescription: "Framing",
			PayType: domain.PayRegular, Hours: 10, BurdenedRate: 20, WeekEnding: "2026-08-23",
			Expenses: derive.Expenses{PerDiem: 45}},
		{InvoiceNumber: "501", EmployeeName: "Bob Ray", JobName: "Yard Work", JobNumber: "J-200",
			PayType: domain.PayOvertime, Hours: 2, BurdenedRate: 37.5, WeekEnding: "2026-08-23"},
	}

	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, WriteSummary(path, rows))

	grid := readGrid(t, path)
	require.Len(t, grid, 3)
	assert.Equal(t, "Invoice Number", grid[0][0])
	assert.Equal(t, "Per Diem", grid[0][9])
	assert.Equal(t, "500", grid[1][0])
	assert.Equal(t, "Jane Doe", grid[1][1])
	assert.Equal(t, "Regular", grid[1][6])
	assert.Equal(t, "45", grid[1][9])
	assert.Equal(t, "501", grid[2][0])
	assert.Equal(t, "Overtime", grid[2][6])
}

func TestWriteInvoice_LayoutAndTotals(t *testing.T) {
	rows := []derive.Row{
		{InvoiceNumber: "500", EmployeeName: "Jane Doe", JobName: "Plant Upgrade", JobNumber: "J-100",
			ActivityCode: "010", ActivityDescription: "Framing",
			PayType: domain.PayRegular, Hours: 10, BurdenedRate: 20, WeekEnding: "2026-08-23"},
		{InvoiceNumber: "500", EmployeeName: "Jane Doe", JobNumber: "J-100",
			ActivityCode: "010", ActivityDescription: "Framing",
			PayType: domain.PayOvertime, Hours: 2, BurdenedRate: 30, WeekEnding: "2026-08-23"},
	}
	batch := derive.Aggregate(rows)
	require.Len(t, batch.Order, 1)
	agg := batch.Invoices["500"]
	agg.ClientName = "Acme Fabrication"
	totals := derive.ComputeTotals(agg)

	path := filepath.Join(t.TempDir(), "invoice.xlsx")
	require.NoError(t, WriteInvoice(path, agg, totals))

	grid := readGrid(t, path)
	assert.Equal(t, []string{"Invoice Number", "500"}, grid[0][:2])
	assert.Equal(t, []string{"Job Number", "J-100"}, grid[2][:2])
	assert.Equal(t, []string{"Client", "Acme Fabrication"}, grid[3][:2])

	// Line section starts after the header block and a blank row.
	assert.Equal(t, "Employee", grid[6][0])
	assert.Equal(t, "Jane Doe", grid[7][0])
	assert.Equal(t, "010 - Framing", grid[7][1])

	// Totals block closes the sheet.
	last := grid[len(grid)-1]
	assert.Equal(t, "Total Amount", last[0])
	assert.Equal(t, "260", last[1])
}

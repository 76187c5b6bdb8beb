package export

import (
	"fmt"
	"strconv"

	"github.com/rcalloway/timebill/internal/derive"
	"github.com/xuri/excelize/v2"
)

const moneyFormat = "#,##0.00"

// WriteSummary writes the processed canonical rows to a workbook, one
// row per line item, in the same column order the default import
// mapping reads. This is the audit artifact for a generation run.
func WriteSummary(path string, rows []derive.Row) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := []any{"Invoice Number", "Employee", "Job Name", "Job Number",
		"Activity Code", "Activity Description", "Pay Type", "Hours", "Burdened Rate",
		"Per Diem", "Mileage", "Safety Equipment", "Week Ending"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}

	for i, r := range rows {
		cell := "A" + strconv.Itoa(i+2)
		values := []any{r.InvoiceNumber, r.EmployeeName, r.JobName, r.JobNumber,
			r.ActivityCode, r.ActivityDescription, string(r.PayType), r.Hours, r.BurdenedRate,
			r.Expenses.PerDiem, r.Expenses.Mileage, r.Expenses.SafetyEquipment, r.WeekEnding}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}

	if err := applyMoneyFormat(f, sheet, "I", "L", len(rows)); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving summary workbook: %w", err)
	}
	return f.Close()
}

// WriteInvoice writes one generated invoice to a workbook: a header
// block, an employee/activity line section, and a totals block. The
// layout mirrors the paper invoice the amounts are billed on.
func WriteInvoice(path string, agg *derive.InvoiceAggregate, totals derive.InvoiceTotals) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	head := [][]any{
		{"Invoice Number", agg.InvoiceNumber},
		{"Job", agg.JobName},
		{"Job Number", agg.JobNumber},
		{"Client", agg.ClientName},
		{"Week Ending", agg.WeekEnding},
	}
	for i, pair := range head {
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+1), &pair); err != nil {
			return fmt.Errorf("writing invoice header: %w", err)
		}
	}

	row := len(head) + 2
	columns := []any{"Employee", "Activity", "Regular Hours", "Overtime Hours", "Regular Rate", "Overtime Rate", "Amount"}
	if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(row), &columns); err != nil {
		return fmt.Errorf("writing line header: %w", err)
	}
	row++

	lineCount := 0
	for _, line := range agg.EmployeesInOrder() {
		switch line.Kind {
		case derive.LineActivityBreakdown:
			for _, acc := range line.ActivitiesInOrder() {
				values := []any{line.EmployeeName, acc.ActivityKey,
					acc.RegularHours, acc.OvertimeHours,
					acc.RegularRate.Value(), acc.OvertimeRate.Value(), acc.Total()}
				if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(row), &values); err != nil {
					return fmt.Errorf("writing invoice line: %w", err)
				}
				row++
				lineCount++
			}
		case derive.LineDirectHours, derive.LineExpenseOnly:
			values := []any{line.EmployeeName, "", line.Hours, 0.0, line.Rate, 0.0, derive.LineTotal(line)}
			if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(row), &values); err != nil {
				return fmt.Errorf("writing invoice line: %w", err)
			}
			row++
			lineCount++
		}
	}

	row++
	footer := [][]any{
		{"Total Regular Hours", totals.TotalRegularHours},
		{"Total Overtime Hours", totals.TotalOvertimeHours},
		{"Total Expenses", totals.TotalExpenses},
		{"Total Amount", totals.TotalAmount},
	}
	for _, pair := range footer {
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(row), &pair); err != nil {
			return fmt.Errorf("writing invoice totals: %w", err)
		}
		row++
	}

	if err := applyMoneyFormat(f, sheet, "G", "G", lineCount+len(head)+len(footer)+2); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving invoice workbook: %w", err)
	}
	return f.Close()
}

func applyMoneyFormat(f *excelize.File, sheet, firstCol, lastCol string, rows int) error {
	if rows <= 0 {
		return nil
	}
	format := moneyFormat
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return fmt.Errorf("building money style: %w", err)
	}
	if err := f.SetCellStyle(sheet, firstCol+"2", lastCol+strconv.Itoa(rows+1), style); err != nil {
		return fmt.Errorf("applying money style: %w", err)
	}
	return nil
}

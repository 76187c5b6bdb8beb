package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/domain"
)

// manualRowValues collects one hand-entered timesheet row.
type manualRowValues struct {
	Employee            string
	JobName             string
	JobNumber           string
	ActivityCode        string
	ActivityDescription string
	PayType             string
	Hours               string
	Rate                string
}

func manualRowForm(v *manualRowValues) *huh.Form {
	v.PayType = string(domain.PayRegular)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Employee Name").
				Placeholder("Jane Doe").
				Value(&v.Employee),
			huh.NewInput().
				Title("Job Number").
				Placeholder("J-100").
				Value(&v.JobNumber),
			huh.NewInput().
				Title("Job Name").
				Value(&v.JobName),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Activity Code").
				Placeholder("010").
				Value(&v.ActivityCode),
			huh.NewInput().
				Title("Activity Description").
				Value(&v.ActivityDescription),
			huh.NewSelect[string]().
				Title("Pay Type").
				Options(
					huh.NewOption("Regular", string(domain.PayRegular)),
					huh.NewOption("Overtime", string(domain.PayOvertime)),
				).
				Value(&v.PayType),
			huh.NewInput().
				Title("Hours").
				Placeholder("8").
				Value(&v.Hours).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Burdened Rate").
				Placeholder("20.00").
				Value(&v.Rate),
		),
	).WithTheme(timebillHuhTheme()).WithShowHelp(false)
}

// manualEntryMapping is the default column mapping extended with the
// single full-name field the entry form collects instead of the
// first/last split a payroll export carries.
func manualEntryMapping() derive.ColumnMapping {
	m := derive.DefaultColumnMapping()
	m.EmployeeName = "Employee Name"
	return m
}

func recordFromManualRow(v manualRowValues) map[string]string {
	return map[string]string{
		"Employee Name":        v.Employee,
		"Job Name":             v.JobName,
		"Job Number":           v.JobNumber,
		"Activity Code":        v.ActivityCode,
		"Activity Description": v.ActivityDescription,
		"Pay Type":             v.PayType,
		"Hours":                v.Hours,
		"Burdened Rate":        v.Rate,
	}
}

// collectManualRows runs the entry form in a loop until the user stops
// adding rows, then normalizes the collected records through the same
// pass imported files go through.
func collectManualRows(app *App) ([]derive.Row, []derive.SkippedRow, error) {
	var records []map[string]string
	for {
		var v manualRowValues
		if err := manualRowForm(&v).Run(); err != nil {
			return nil, nil, err
		}
		records = append(records, recordFromManualRow(v))

		var more bool
		if err := confirmForm("Add another row?", &more).Run(); err != nil {
			return nil, nil, err
		}
		if !more {
			break
		}
	}

	rows, skipped := derive.Normalizer{Mapping: manualEntryMapping()}.NormalizeRecords(records)
	return rows, skipped, nil
}

package derive

import (
	"testing"

	"github.com/rcalloway/timebill/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func janeDoeRows() []Row {
	return []Row{
		{
			InvoiceNumber: "100", EmployeeName: "Jane Doe",
			JobName: "Plant Upgrade", JobNumber: "J1",
			ActivityCode: "010", ActivityDescription: "Framing",
			PayType: domain.PayRegular, Hours: 10, BurdenedRate: 20,
			WeekEnding: "2026-08-23",
		},
		{
			InvoiceNumber: "100", EmployeeName: "Jane Doe",
			JobName: "Plant Upgrade", JobNumber: "J1",
			ActivityCode: "010", ActivityDescription: "Framing",
			PayType: domain.PayOvertime, Hours: 2, BurdenedRate: 30,
			WeekEnding: "2026-08-23",
		},
	}
}

func TestAggregate_SingleEmployeeRegularAndOvertime(t *testing.T) {
	result := Aggregate(janeDoeRows())

	require.Len(t, result.Invoices, 1)
	assert.Empty(t, result.Skipped)

	inv := result.Invoices["100"]
	require.NotNil(t, inv)
	assert.Equal(t, "Plant Upgrade", inv.JobName)
	assert.Equal(t, "J1", inv.JobNumber)
	assert.Equal(t, "2026-08-23", inv.WeekEnding)

	lines := inv.EmployeesInOrder()
	require.Len(t, lines, 1)
	require.Equal(t, LineActivityBreakdown, lines[0].Kind)

	accs := lines[0].ActivitiesInOrder()
	require.Len(t, accs, 1)
	acc := accs[0]
	assert.Equal(t, 10.0, acc.RegularHours)
	assert.Equal(t, 20.0, acc.RegularRate.Value())
	assert.Equal(t, 200.0, acc.RegularTotal)
	assert.Equal(t, 2.0, acc.OvertimeHours)
	assert.Equal(t, 30.0, acc.OvertimeRate.Value())
	assert.Equal(t, 60.0, acc.OvertimeTotal)

	totals := ComputeTotals(inv)
	assert.Equal(t, 260.0, totals.TotalAmount)
}

func TestAggregate_IsDeterministicAcrossRuns(t *testing.T) {
	rows := janeDoeRows()

	first := ComputeTotals(Aggregate(rows).Invoices["100"])
	second := ComputeTotals(Aggregate(rows).Invoices["100"])

	assert.Equal(t, first, second)
}

func TestAggregate_BlankActivityKeyStaysBlank(t *testing.T) {
	rows := []Row{{
		InvoiceNumber: "100", EmployeeName: "Jane Doe",
		PayType: domain.PayRegular, Hours: 5, BurdenedRate: 10,
	}}

	result := Aggregate(rows)
	accs := result.Invoices["100"].EmployeesInOrder()[0].ActivitiesInOrder()
	require.Len(t, accs, 1)
	assert.Equal(t, "", accs[0].ActivityKey)

	totals := ComputeTotals(result.Invoices["100"])
	require.Len(t, totals.PerActivity, 1)
	assert.Equal(t, "", totals.PerActivity[0].ActivityKey)
	assert.NotContains(t, totals.PerActivity[0].ActivityKey, "undefined")
}

func TestAggregate_MissingInvoiceNumberIsReported(t *testing.T) {
	rows := []Row{
		{EmployeeName: "Jane Doe", JobNumber: "J1", PayType: domain.PayRegular, Hours: 8, BurdenedRate: 20},
		{InvoiceNumber: "100", EmployeeName: "Bob Ray", JobNumber: "J1", PayType: domain.PayRegular, Hours: 4, BurdenedRate: 20},
	}

	result := Aggregate(rows)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 0, result.Skipped[0].Index)
	assert.Equal(t, "missing invoice number", result.Skipped[0].Reason)
	require.Len(t, result.Invoices, 1)
}

func TestAggregate_PartitionsByInvoiceNumberInFirstSeenOrder(t *testing.T) {
	rows := []Row{
		{InvoiceNumber: "101", EmployeeName: "A", JobNumber: "J2", PayType: domain.PayRegular, Hours: 1, BurdenedRate: 10},
		{InvoiceNumber: "100", EmployeeName: "B", JobNumber: "J1", PayType: domain.PayRegular, Hours: 2, BurdenedRate: 10},
		{InvoiceNumber: "101", EmployeeName: "C", JobNumber: "J2", PayType: domain.PayRegular, Hours: 3, BurdenedRate: 10},
	}

	result := Aggregate(rows)
	assert.Equal(t, []string{"101", "100"}, result.Order)

	invs := result.InvoicesInOrder()
	require.Len(t, invs, 2)
	assert.Equal(t, "101", invs[0].InvoiceNumber)
	assert.Len(t, invs[0].Employees, 2)
}

func TestAggregate_ExpenseRowsBecomeExpenseLines(t *testing.T) {
	rows := []Row{
		{InvoiceNumber: "100", EmployeeName: "Jane Doe", JobNumber: "J1",
			Expenses: Expenses{PerDiem: 45, Mileage: 12.5}},
		{InvoiceNumber: "100", EmployeeName: "Bob Ray", JobNumber: "J1",
			PayType: domain.PayRegular, Hours: 8, BurdenedRate: 20,
			Expenses: Expenses{SafetyEquipment: 30}},
	}

	result := Aggregate(rows)
	assert.Empty(t, result.Skipped)

	lines := result.Invoices["100"].EmployeesInOrder()
	require.Len(t, lines, 2)
	assert.Equal(t, LineExpenseOnly, lines[0].Kind)
	assert.Equal(t, 57.5, lines[0].Expenses.Sum())
	assert.Equal(t, LineDirectHours, lines[1].Kind)
	assert.Equal(t, 8.0, lines[1].Hours)
	assert.Equal(t, 20.0, lines[1].Rate)

	totals := ComputeTotals(result.Invoices["100"])
	assert.Equal(t, 87.5, totals.TotalExpenses)
	// 8h x 20 labor plus 87.50 in expenses.
	assert.Equal(t, 247.5, totals.TotalAmount)
}

func TestAggregate_MixedLineKindsForEmployeeAreReported(t *testing.T) {
	rows := []Row{
		{InvoiceNumber: "100", EmployeeName: "Jane Doe", JobNumber: "J1",
			PayType: domain.PayRegular, Hours: 8, BurdenedRate: 20},
		{InvoiceNumber: "100", EmployeeName: "Jane Doe", JobNumber: "J1",
			Expenses: Expenses{PerDiem: 45}},
	}

	result := Aggregate(rows)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 1, result.Skipped[0].Index)
	assert.Contains(t, result.Skipped[0].Reason, "activity_breakdown")

	// The labor line is untouched by the rejected expense row.
	totals := ComputeTotals(result.Invoices["100"])
	assert.Equal(t, 160.0, totals.TotalAmount)
	assert.Zero(t, totals.TotalExpenses)
}

func TestAggregate_SeparateActivitiesPerEmployee(t *testing.T) {
	rows := []Row{
		{InvoiceNumber: "100", EmployeeName: "Jane Doe", ActivityCode: "010", ActivityDescription: "Framing", PayType: domain.PayRegular, Hours: 4, BurdenedRate: 20},
		{InvoiceNumber: "100", EmployeeName: "Jane Doe", ActivityCode: "020", ActivityDescription: "Wiring", PayType: domain.PayRegular, Hours: 3, BurdenedRate: 25},
		{InvoiceNumber: "100", EmployeeName: "Bob Ray", ActivityCode: "010", ActivityDescription: "Framing", PayType: domain.PayRegular, Hours: 2, BurdenedRate: 18},
	}

	result := Aggregate(rows)
	inv := result.Invoices["100"]
	require.Len(t, inv.Employees, 2)

	jane := inv.Employees["Jane Doe"]
	require.Len(t, jane.Activities, 2)
	bob := inv.Employees["Bob Ray"]
	require.Len(t, bob.Activities, 1)

	// Same activity key under different employees accumulates separately.
	assert.Equal(t, 4.0, jane.Activities["010 - Framing"].RegularHours)
	assert.Equal(t, 2.0, bob.Activities["010 - Framing"].RegularHours)
}

package derive

import (
	"testing"

	"github.com/rcalloway/timebill/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals_PerActivitySortedDescendingByTotal(t *testing.T) {
	rows := []Row{
		{InvoiceNumber: "100", EmployeeName: "A", ActivityCode: "010", ActivityDescription: "Framing", PayType: domain.PayRegular, Hours: 2, BurdenedRate: 10},
		{InvoiceNumber: "100", EmployeeName: "A", ActivityCode: "020", ActivityDescription: "Wiring", PayType: domain.PayRegular, Hours: 10, BurdenedRate: 30},
		{InvoiceNumber: "100", EmployeeName: "B", ActivityCode: "030", ActivityDescription: "Paint", PayType: domain.PayRegular, Hours: 5, BurdenedRate: 20},
	}

	totals := ComputeTotals(Aggregate(rows).Invoices["100"])

	require.Len(t, totals.PerActivity, 3)
	assert.Equal(t, "020 - Wiring", totals.PerActivity[0].ActivityKey)
	assert.Equal(t, "030 - Paint", totals.PerActivity[1].ActivityKey)
	assert.Equal(t, "010 - Framing", totals.PerActivity[2].ActivityKey)
}

func TestComputeTotals_TiesKeepFirstSeenOrder(t *testing.T) {
	rows := []Row{
		{InvoiceNumber: "100", EmployeeName: "A", ActivityCode: "B1", PayType: domain.PayRegular, Hours: 5, BurdenedRate: 10},
		{InvoiceNumber: "100", EmployeeName: "A", ActivityCode: "B2", PayType: domain.PayRegular, Hours: 5, BurdenedRate: 10},
	}

	totals := ComputeTotals(Aggregate(rows).Invoices["100"])

	require.Len(t, totals.PerActivity, 2)
	assert.Equal(t, "B1", totals.PerActivity[0].ActivityKey)
	assert.Equal(t, "B2", totals.PerActivity[1].ActivityKey)
}

func TestComputeTotals_AggregatesActivityAcrossEmployees(t *testing.T) {
	rows := []Row{
		{InvoiceNumber: "100", EmployeeName: "A", ActivityCode: "010", PayType: domain.PayRegular, Hours: 4, BurdenedRate: 20},
		{InvoiceNumber: "100", EmployeeName: "B", ActivityCode: "010", PayType: domain.PayOvertime, Hours: 2, BurdenedRate: 30},
	}

	totals := ComputeTotals(Aggregate(rows).Invoices["100"])

	require.Len(t, totals.PerActivity, 1)
	at := totals.PerActivity[0]
	assert.Equal(t, 4.0, at.RegularHours)
	assert.Equal(t, 2.0, at.OvertimeHours)
	assert.Equal(t, 140.0, at.Total)
	assert.Equal(t, 140.0, totals.TotalAmount)
}

func TestComputeTotals_WarnsOnInferredRates(t *testing.T) {
	rows := []Row{
		{InvoiceNumber: "100", EmployeeName: "Jane Doe", ActivityCode: "010", PayType: domain.PayRegular, Hours: 8, BurdenedRate: 40},
	}

	totals := ComputeTotals(Aggregate(rows).Invoices["100"])

	require.Len(t, totals.Warnings, 1)
	assert.Contains(t, totals.Warnings[0], "overtime rate")
	assert.Contains(t, totals.Warnings[0], "Jane Doe")
}

func TestComputeTotals_DirectHoursLine(t *testing.T) {
	inv := &InvoiceAggregate{InvoiceNumber: "200", Employees: map[string]*EmployeeLine{}}
	inv.AddDirectHours("Jane Doe", 40, 25, Expenses{PerDiem: 100, Mileage: 57.50})

	totals := ComputeTotals(inv)

	assert.Equal(t, 40.0, totals.TotalRegularHours)
	assert.Equal(t, 157.50, totals.TotalExpenses)
	// 40*25 labor + 157.50 expenses, no double counting.
	assert.Equal(t, 1157.50, totals.TotalAmount)
	assert.Empty(t, totals.PerActivity)
}

func TestComputeTotals_ExpenseOnlyLine(t *testing.T) {
	inv := &InvoiceAggregate{InvoiceNumber: "201", Employees: map[string]*EmployeeLine{}}
	inv.AddExpenses("Bob Ray", Expenses{SafetyEquipment: 89.99})

	totals := ComputeTotals(inv)

	assert.Zero(t, totals.TotalRegularHours)
	assert.Equal(t, 89.99, totals.TotalAmount)
}

func TestLineTotal_PerKind(t *testing.T) {
	inv := &InvoiceAggregate{InvoiceNumber: "300", Employees: map[string]*EmployeeLine{}}
	inv.AddDirectHours("A", 10, 20, Expenses{PerDiem: 5})
	inv.AddExpenses("B", Expenses{Mileage: 12.25})

	lines := inv.EmployeesInOrder()
	require.Len(t, lines, 2)
	assert.Equal(t, 205.0, LineTotal(lines[0]))
	assert.Equal(t, 12.25, LineTotal(lines[1]))
}

func TestCombine_MatchesSumOfInvoiceTotals(t *testing.T) {
	rows := []Row{
		{InvoiceNumber: "100", EmployeeName: "A", JobNumber: "J1", PayType: domain.PayRegular, Hours: 10.33, BurdenedRate: 19.99},
		{InvoiceNumber: "101", EmployeeName: "B", JobNumber: "J2", PayType: domain.PayOvertime, Hours: 3.17, BurdenedRate: 42.13},
		{InvoiceNumber: "102", EmployeeName: "C", JobNumber: "J3", PayType: domain.PayRegular, Hours: 7.5, BurdenedRate: 33.33},
	}

	result := Aggregate(rows)
	var totals []InvoiceTotals
	var expected float64
	for _, inv := range result.InvoicesInOrder() {
		t := ComputeTotals(inv)
		totals = append(totals, t)
		expected = Round2(expected + t.TotalAmount)
	}

	combined := Combine(totals)
	assert.Equal(t, 3, combined.InvoiceCount)
	assert.Equal(t, expected, combined.TotalAmount)
}

func TestCombine_SumsHours(t *testing.T) {
	combined := Combine([]InvoiceTotals{
		{TotalRegularHours: 10.5, TotalOvertimeHours: 2, TotalAmount: 100},
		{TotalRegularHours: 8.25, TotalOvertimeHours: 1.75, TotalAmount: 50.50},
	})

	assert.Equal(t, 18.75, combined.TotalRegularHours)
	assert.Equal(t, 3.75, combined.TotalOvertimeHours)
	assert.Equal(t, 150.50, combined.TotalAmount)
}

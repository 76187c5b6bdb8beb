package derive

import (
	"fmt"
	"sort"
)

// ActivityTotal is one activity's figures summed across every
// employee on the invoice. The employee dimension is lost here; it
// survives in the per-line accumulators.
type ActivityTotal struct {
	ActivityKey   string
	RegularHours  float64
	OvertimeHours float64
	Total         float64
}

// InvoiceTotals is the presentation-ready summary of one invoice.
type InvoiceTotals struct {
	InvoiceNumber      string
	TotalRegularHours  float64
	TotalOvertimeHours float64
	TotalExpenses      float64
	TotalAmount        float64
	PerActivity        []ActivityTotal

	// Warnings flag rates that were inferred rather than supplied, so
	// the business user can review amounts resting on assumption.
	Warnings []string
}

// ComputeTotals derives per-invoice and per-activity totals from an
// aggregate. Accumulation is cumulative-rounded at every step, the
// same discipline the aggregation pass uses, so a combined view built
// from these totals reproduces them exactly.
//
// Per-activity totals are sorted descending by amount; ties keep
// first-seen order.
func ComputeTotals(inv *InvoiceAggregate) InvoiceTotals {
	t := InvoiceTotals{InvoiceNumber: inv.InvoiceNumber}

	byActivity := make(map[string]*ActivityTotal)
	var activityOrder []string

	for _, line := range inv.EmployeesInOrder() {
		switch line.Kind {
		case LineActivityBreakdown:
			for _, acc := range line.ActivitiesInOrder() {
				t.TotalRegularHours = Round2(t.TotalRegularHours + acc.RegularHours)
				t.TotalOvertimeHours = Round2(t.TotalOvertimeHours + acc.OvertimeHours)
				t.TotalAmount = Round2(t.TotalAmount + acc.RegularTotal)
				t.TotalAmount = Round2(t.TotalAmount + acc.OvertimeTotal)

				at, ok := byActivity[acc.ActivityKey]
				if !ok {
					at = &ActivityTotal{ActivityKey: acc.ActivityKey}
					byActivity[acc.ActivityKey] = at
					activityOrder = append(activityOrder, acc.ActivityKey)
				}
				at.RegularHours = Round2(at.RegularHours + acc.RegularHours)
				at.OvertimeHours = Round2(at.OvertimeHours + acc.OvertimeHours)
				at.Total = Round2(at.Total + acc.Total())

				if acc.OvertimeInferred && acc.OvertimeRate.IsSet() {
					t.Warnings = append(t.Warnings, fmt.Sprintf(
						"overtime rate for %s / %s is inferred (%.2f)",
						line.EmployeeName, displayKey(acc.ActivityKey), acc.OvertimeRate.Value()))
				}
				if acc.RegularInferred && acc.RegularRate.IsSet() {
					t.Warnings = append(t.Warnings, fmt.Sprintf(
						"regular rate for %s / %s is inferred (%.2f)",
						line.EmployeeName, displayKey(acc.ActivityKey), acc.RegularRate.Value()))
				}
			}

		case LineDirectHours:
			labor := Round2(line.Hours * line.Rate)
			t.TotalRegularHours = Round2(t.TotalRegularHours + line.Hours)
			t.TotalAmount = Round2(t.TotalAmount + labor)
			exp := line.Expenses.Sum()
			t.TotalExpenses = Round2(t.TotalExpenses + exp)
			t.TotalAmount = Round2(t.TotalAmount + exp)

		case LineExpenseOnly:
			exp := line.Expenses.Sum()
			t.TotalExpenses = Round2(t.TotalExpenses + exp)
			t.TotalAmount = Round2(t.TotalAmount + exp)
		}
	}

	t.PerActivity = make([]ActivityTotal, 0, len(activityOrder))
	for _, key := range activityOrder {
		t.PerActivity = append(t.PerActivity, *byActivity[key])
	}
	sort.SliceStable(t.PerActivity, func(i, j int) bool {
		return t.PerActivity[i].Total > t.PerActivity[j].Total
	})

	return t
}

// LineTotal returns the full amount one employee line contributes to
// the invoice, labor and expenses combined.
func LineTotal(line *EmployeeLine) float64 {
	switch line.Kind {
	case LineActivityBreakdown:
		var total float64
		for _, acc := range line.ActivitiesInOrder() {
			total = Round2(total + acc.Total())
		}
		return total
	case LineDirectHours:
		return Round2(Round2(line.Hours*line.Rate) + line.Expenses.Sum())
	case LineExpenseOnly:
		return line.Expenses.Sum()
	}
	return 0
}

// CombinedTotals is the roll-up across every invoice in a batch.
type CombinedTotals struct {
	InvoiceCount       int
	TotalRegularHours  float64
	TotalOvertimeHours float64
	TotalAmount        float64
}

// Combine sums per-invoice totals across a batch with the same
// cumulative rounding discipline, so the combined amount equals the
// sum of the constituent invoice amounts exactly.
func Combine(totals []InvoiceTotals) CombinedTotals {
	var c CombinedTotals
	for _, t := range totals {
		c.InvoiceCount++
		c.TotalRegularHours = Round2(c.TotalRegularHours + t.TotalRegularHours)
		c.TotalOvertimeHours = Round2(c.TotalOvertimeHours + t.TotalOvertimeHours)
		c.TotalAmount = Round2(c.TotalAmount + t.TotalAmount)
	}
	return c
}

// displayKey renders a blank activity key as a visible placeholder in
// warning text only; totals keep the raw key.
func displayKey(key string) string {
	if key == "" {
		return "(no activity)"
	}
	return key
}

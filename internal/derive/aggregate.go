package derive

// EmployeeLineKind tags which shape an employee's entry on an invoice
// takes. The shape is resolved once when the line is created, never
// re-sniffed.
type EmployeeLineKind string

const (
	// LineActivityBreakdown carries per-activity hour accumulators.
	LineActivityBreakdown EmployeeLineKind = "activity_breakdown"
	// LineDirectHours carries a single hours x rate figure plus
	// optional itemized expenses.
	LineDirectHours EmployeeLineKind = "direct_hours"
	// LineExpenseOnly carries itemized expenses and no labor.
	LineExpenseOnly EmployeeLineKind = "expense_only"
)

// Expenses are the itemized non-hourly amounts a line can carry. They
// are added straight into invoice totals without passing through the
// hours x rate path.
type Expenses struct {
	PerDiem         float64
	Mileage         float64
	SafetyEquipment float64
}

// Sum returns the cumulative-rounded total of the itemized amounts.
func (e Expenses) Sum() float64 {
	total := Round2(e.PerDiem)
	total = Round2(total + e.Mileage)
	return Round2(total + e.SafetyEquipment)
}

// EmployeeLine is one employee's entry on an invoice.
type EmployeeLine struct {
	Kind         EmployeeLineKind
	EmployeeName string

	// LineActivityBreakdown
	Activities    map[string]*ActivityAccumulator
	activityOrder []string

	// LineDirectHours
	Hours float64
	Rate  float64

	// LineDirectHours and LineExpenseOnly
	Expenses Expenses
}

// ActivitiesInOrder returns the line's accumulators in first-seen
// order.
func (l *EmployeeLine) ActivitiesInOrder() []*ActivityAccumulator {
	out := make([]*ActivityAccumulator, 0, len(l.activityOrder))
	for _, key := range l.activityOrder {
		out = append(out, l.Activities[key])
	}
	return out
}

// activity returns the accumulator for key, creating it on first use.
func (l *EmployeeLine) activity(key, code, description string) *ActivityAccumulator {
	if acc, ok := l.Activities[key]; ok {
		return acc
	}
	acc := &ActivityAccumulator{
		ActivityKey:         key,
		ActivityCode:        code,
		ActivityDescription: description,
	}
	l.Activities[key] = acc
	l.activityOrder = append(l.activityOrder, key)
	return acc
}

// InvoiceAggregate is one generated invoice: job metadata seeded from
// the first row that referenced the invoice number, plus employee
// lines populated as rows are scanned. It is a pure accumulation
// structure; only derived totals are persisted.
type InvoiceAggregate struct {
	InvoiceNumber string
	JobName       string
	JobNumber     string
	WeekEnding    string
	ClientName    string

	Employees     map[string]*EmployeeLine
	employeeOrder []string
}

// EmployeesInOrder returns employee lines in first-seen order.
func (inv *InvoiceAggregate) EmployeesInOrder() []*EmployeeLine {
	out := make([]*EmployeeLine, 0, len(inv.employeeOrder))
	for _, name := range inv.employeeOrder {
		out = append(out, inv.Employees[name])
	}
	return out
}

func (inv *InvoiceAggregate) line(name string, kind EmployeeLineKind) *EmployeeLine {
	if l, ok := inv.Employees[name]; ok {
		return l
	}
	l := &EmployeeLine{Kind: kind, EmployeeName: name}
	if kind == LineActivityBreakdown {
		l.Activities = make(map[string]*ActivityAccumulator)
	}
	inv.Employees[name] = l
	inv.employeeOrder = append(inv.employeeOrder, name)
	return l
}

// AddDirectHours records a flat hours x rate line for an employee,
// with optional itemized expenses.
func (inv *InvoiceAggregate) AddDirectHours(name string, hours, rate float64, exp Expenses) {
	l := inv.line(name, LineDirectHours)
	l.Hours = Round2(l.Hours + hours)
	l.Rate = rate
	l.Expenses.PerDiem = Round2(l.Expenses.PerDiem + exp.PerDiem)
	l.Expenses.Mileage = Round2(l.Expenses.Mileage + exp.Mileage)
	l.Expenses.SafetyEquipment = Round2(l.Expenses.SafetyEquipment + exp.SafetyEquipment)
}

// AddExpenses records an expense-only line for an employee.
func (inv *InvoiceAggregate) AddExpenses(name string, exp Expenses) {
	l := inv.line(name, LineExpenseOnly)
	l.Expenses.PerDiem = Round2(l.Expenses.PerDiem + exp.PerDiem)
	l.Expenses.Mileage = Round2(l.Expenses.Mileage + exp.Mileage)
	l.Expenses.SafetyEquipment = Round2(l.Expenses.SafetyEquipment + exp.SafetyEquipment)
}

// BatchResult is the outcome of one aggregation pass: the generated
// invoices in first-seen order, plus every row that was skipped and
// why. Partial success is the normal case; callers decide how to
// present skips.
type BatchResult struct {
	Invoices map[string]*InvoiceAggregate
	Order    []string
	Skipped  []SkippedRow
}

// InvoicesInOrder returns aggregates in the order their invoice
// numbers were first seen.
func (b *BatchResult) InvoicesInOrder() []*InvoiceAggregate {
	out := make([]*InvoiceAggregate, 0, len(b.Order))
	for _, num := range b.Order {
		out = append(out, b.Invoices[num])
	}
	return out
}

// Aggregate folds canonical rows into per-invoice aggregates. Rows are
// processed strictly in slice order; the same rows in a different
// order can produce different inferred rates, which is deliberate —
// explicit data always takes precedence and inference is a fallback
// only. Rows without an invoice number are reported as skipped.
func Aggregate(rows []Row) *BatchResult {
	result := &BatchResult{Invoices: make(map[string]*InvoiceAggregate)}

	for i, row := range rows {
		if row.InvoiceNumber == "" {
			result.Skipped = append(result.Skipped, SkippedRow{
				Index:  i,
				Reason: "missing invoice number",
				Fields: map[string]string{"employee": row.EmployeeName, "job": row.JobNumber},
			})
			continue
		}

		inv, ok := result.Invoices[row.InvoiceNumber]
		if !ok {
			inv = &InvoiceAggregate{
				InvoiceNumber: row.InvoiceNumber,
				JobName:       row.JobName,
				JobNumber:     row.JobNumber,
				WeekEnding:    row.WeekEnding,
				Employees:     make(map[string]*EmployeeLine),
			}
			result.Invoices[row.InvoiceNumber] = inv
			result.Order = append(result.Order, row.InvoiceNumber)
		}

		if row.Expenses != (Expenses{}) {
			kind := LineExpenseOnly
			if row.Hours != 0 {
				kind = LineDirectHours
			}
			if l, ok := inv.Employees[row.EmployeeName]; ok && l.Kind != kind {
				result.Skipped = append(result.Skipped, SkippedRow{
					Index:  i,
					Reason: "employee already has a " + string(l.Kind) + " line",
					Fields: map[string]string{"employee": row.EmployeeName},
				})
				continue
			}
			if kind == LineDirectHours {
				inv.AddDirectHours(row.EmployeeName, row.Hours, row.BurdenedRate, row.Expenses)
			} else {
				inv.AddExpenses(row.EmployeeName, row.Expenses)
			}
			continue
		}

		line := inv.line(row.EmployeeName, LineActivityBreakdown)
		if line.Kind != LineActivityBreakdown {
			result.Skipped = append(result.Skipped, SkippedRow{
				Index:  i,
				Reason: "employee line is not an activity breakdown",
				Fields: map[string]string{"employee": row.EmployeeName},
			})
			continue
		}

		acc := line.activity(row.ActivityKey(), row.ActivityCode, row.ActivityDescription)
		acc.Apply(row.PayType, row.Hours, row.BurdenedRate)
	}

	return result
}

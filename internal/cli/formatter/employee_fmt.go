package formatter

import (
	"fmt"
	"strings"

	"github.com/rcalloway/timebill/internal/domain"
)

// FormatEmployeeList renders the employee roster as a table.
func FormatEmployeeList(employees []*domain.Employee) string {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{
			TruncID(e.ID),
			StylePurple.Render(e.EECode),
			Bold(e.FullName()),
			Money(e.RegularRate),
			Money(e.OvertimeRate),
		})
	}
	return RenderTable([]string{"ID", "Code", "Name", "Regular", "Overtime"}, rows)
}

// FormatEmployeeInspect renders one employee's details in a box.
func FormatEmployeeInspect(e *domain.Employee) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Code:"), StylePurple.Render(e.EECode)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Regular rate:"), Money(e.RegularRate)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Overtime rate:"), Money(e.OvertimeRate)))
	b.WriteString(fmt.Sprintf("%s %s", Dim("ID:"), e.ID))
	return RenderBox(e.FullName(), b.String())
}

// FormatPayHistory renders an employee's pay rate history, oldest
// first.
func FormatPayHistory(entries []*domain.PayHistoryEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, h := range entries {
		kind := Dim(string(h.Kind))
		if h.Kind == domain.ChangeUpdate {
			kind = StyleYellow.Render(string(h.Kind))
		}
		rows = append(rows, []string{
			ShortDate(h.EffectiveDate),
			kind,
			Money(h.RegularRate),
			Money(h.OvertimeRate),
		})
	}
	return RenderTable([]string{"Effective", "Kind", "Regular", "Overtime"}, rows)
}

// FormatRateChanges renders a rate change report across employees.
func FormatRateChanges(changes []domain.PayRateChange) string {
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{
			ShortDate(c.ChangedAt),
			Bold(c.EmployeeName),
			StylePurple.Render(c.EECode),
			fmt.Sprintf("%s %s %s", Money(c.OldRegularRate), Dim("→"), Money(c.NewRegularRate)),
			fmt.Sprintf("%s %s %s", Money(c.OldOvertimeRate), Dim("→"), Money(c.NewOvertimeRate)),
		})
	}
	return RenderTable([]string{"Changed", "Employee", "Code", "Regular", "Overtime"}, rows)
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/domain"
)

// FormatTimesheetList renders stored timesheet entries as a table.
func FormatTimesheetList(entries []*domain.TimesheetEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.ID),
			ShortDate(e.Date),
			Hours(e.Hours),
			PayTypeBadge(e.PayType),
		})
	}
	return RenderTable([]string{"ID", "Date", "Hours", "Type"}, rows)
}

// FormatWeekRows renders the canonical rows a generation run for a
// week would consume.
func FormatWeekRows(rows []derive.Row) string {
	if len(rows) == 0 {
		return Dim("No billable rows for this week.")
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			Bold(r.EmployeeName),
			StylePurple.Render(r.JobNumber),
			r.ActivityKey(),
			PayTypeBadge(r.PayType),
			Hours(r.Hours),
			Money(r.BurdenedRate),
		})
	}
	return RenderTable([]string{"Employee", "Job", "Activity", "Type", "Hours", "Rate"}, table)
}

// FormatSkipped renders rows the engine declined, one per line.
func FormatSkipped(skipped []derive.SkippedRow) string {
	if len(skipped) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleYellow.Render(fmt.Sprintf("%d row(s) skipped:", len(skipped))) + "\n")
	for _, s := range skipped {
		detail := ""
		if len(s.Fields) > 0 {
			parts := make([]string, 0, len(s.Fields))
			for k, v := range s.Fields {
				parts = append(parts, k+"="+v)
			}
			detail = " " + Dim("("+strings.Join(parts, " ")+")")
		}
		if s.Index >= 0 {
			b.WriteString(fmt.Sprintf("  row %d: %s%s\n", s.Index, s.Reason, detail))
		} else {
			b.WriteString(fmt.Sprintf("  %s%s\n", s.Reason, detail))
		}
	}
	return b.String()
}

package derive

import (
	"strings"

	"github.com/rcalloway/timebill/internal/domain"
)

// Row is the canonical, engine-internal form of one timesheet line
// item. Rows are immutable once normalized and consumed exactly once
// by the aggregation pass.
type Row struct {
	InvoiceNumber       string
	EmployeeName        string
	JobName             string
	JobNumber           string
	ActivityCode        string
	ActivityDescription string
	PayType             domain.PayType
	Hours               float64
	BurdenedRate        float64
	WeekEnding          string

	// Expenses carries itemized non-hourly amounts. A row with expenses
	// and no hours becomes an expense-only line; with hours it becomes a
	// direct hours x rate line instead of an activity breakdown.
	Expenses Expenses
}

// ActivityKey composes the "{code} - {description}" key an activity is
// accumulated under. Blank parts collapse so an uncoded row keys to ""
// rather than a literal "undefined - undefined".
func (r Row) ActivityKey() string {
	return MakeActivityKey(r.ActivityCode, r.ActivityDescription)
}

// MakeActivityKey joins an activity code and description into the
// composite accumulation key.
func MakeActivityKey(code, description string) string {
	code = strings.TrimSpace(code)
	description = strings.TrimSpace(description)
	switch {
	case code == "" && description == "":
		return ""
	case code == "":
		return description
	case description == "":
		return code
	default:
		return code + " - " + description
	}
}

// SkippedRow is one input row the engine declined to accumulate,
// together with the reason. Skips are surfaced to the caller instead
// of being dropped silently.
type SkippedRow struct {
	Index  int
	Reason string
	Fields map[string]string
}

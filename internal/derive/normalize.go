package derive

import (
	"regexp"
	"strings"

	"github.com/rcalloway/timebill/internal/domain"
)

// ColumnMapping names the source column each canonical field is read
// from. A value is either a header name (matched case-insensitively
// against the header row) or a spreadsheet column letter like "A" or
// "AB" for headerless grids. Empty mappings read as empty/zero.
type ColumnMapping struct {
	EmployeeName        string `yaml:"employee_name"`
	FirstName           string `yaml:"first_name"`
	LastName            string `yaml:"last_name"`
	JobName             string `yaml:"job_name"`
	JobNumber           string `yaml:"job_number"`
	ActivityCode        string `yaml:"activity_code"`
	ActivityDescription string `yaml:"activity_description"`
	PayType             string `yaml:"pay_type"`
	Hours               string `yaml:"hours"`
	BurdenedRate        string `yaml:"burdened_rate"`
	WeekEnding          string `yaml:"week_ending"`
	PerDiem             string `yaml:"per_diem"`
	Mileage             string `yaml:"mileage"`
	SafetyEquipment     string `yaml:"safety_equipment"`
}

// DefaultColumnMapping matches the header names the standard payroll
// export uses.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		FirstName:           "First Name",
		LastName:            "Last Name",
		JobName:             "Job Name",
		JobNumber:           "Job Number",
		ActivityCode:        "Activity Code",
		ActivityDescription: "Activity Description",
		PayType:             "Pay Type",
		Hours:               "Hours",
		BurdenedRate:        "Burdened Rate",
		WeekEnding:          "Week Ending",
		PerDiem:             "Per Diem",
		Mileage:             "Mileage",
		SafetyEquipment:     "Safety Equipment",
	}
}

var columnLetterPattern = regexp.MustCompile(`^[A-Z]{1,2}$`)

// Normalizer converts raw input rows into canonical Rows. It is a pure
// transform: no lookups against persisted state happen here.
type Normalizer struct {
	Mapping ColumnMapping
}

// NormalizeRecords converts header-keyed records (parsed spreadsheet
// rows or manual-entry form rows). Record keys are matched against the
// mapping case-insensitively. Rows with an unknown pay type or no
// employee name are reported in skipped, not dropped.
func (n Normalizer) NormalizeRecords(records []map[string]string) ([]Row, []SkippedRow) {
	var rows []Row
	var skipped []SkippedRow

	for i, rec := range records {
		folded := foldKeys(rec)
		row, reason := n.buildRow(func(col string) string {
			if col == "" {
				return ""
			}
			return folded[strings.ToLower(strings.TrimSpace(col))]
		})
		if reason != "" {
			skipped = append(skipped, SkippedRow{Index: i, Reason: reason, Fields: rec})
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped
}

// NormalizeGrid converts a 2D cell grid whose first row is the header
// row. Mapping values that look like column letters ("A".."ZZ") index
// columns positionally; anything else is matched against the header
// row. Columns the mapping references but the grid lacks read as
// empty.
func (n Normalizer) NormalizeGrid(grid [][]string) ([]Row, []SkippedRow) {
	if len(grid) == 0 {
		return nil, nil
	}

	header := grid[0]
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	resolve := func(col string) int {
		col = strings.TrimSpace(col)
		if col == "" {
			return -1
		}
		if columnLetterPattern.MatchString(col) {
			return letterToIndex(col)
		}
		if i, ok := index[strings.ToLower(col)]; ok {
			return i
		}
		return -1
	}

	var rows []Row
	var skipped []SkippedRow
	for i, cells := range grid[1:] {
		if blankCells(cells) {
			continue
		}
		row, reason := n.buildRow(func(col string) string {
			j := resolve(col)
			if j < 0 || j >= len(cells) {
				return ""
			}
			return cells[j]
		})
		if reason != "" {
			skipped = append(skipped, SkippedRow{Index: i, Reason: reason, Fields: cellFields(header, cells)})
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped
}

// buildRow assembles one canonical row from a column accessor. It
// returns a non-empty reason when the row must be skipped.
func (n Normalizer) buildRow(get func(col string) string) (Row, string) {
	m := n.Mapping

	name := strings.TrimSpace(get(m.EmployeeName))
	if name == "" {
		name = strings.TrimSpace(strings.TrimSpace(get(m.FirstName)) + " " + strings.TrimSpace(get(m.LastName)))
	}
	if name == "" {
		return Row{}, "missing employee name"
	}

	hours := CleanNumber(get(m.Hours))
	expenses := Expenses{
		PerDiem:         CleanNumber(get(m.PerDiem)),
		Mileage:         CleanNumber(get(m.Mileage)),
		SafetyEquipment: CleanNumber(get(m.SafetyEquipment)),
	}

	// Expense-only rows carry no labor, so a blank pay type is fine
	// there; every other row must name one.
	payType := domain.PayRegular
	if raw := strings.TrimSpace(get(m.PayType)); raw != "" || hours != 0 || expenses == (Expenses{}) {
		var err error
		payType, err = domain.ParsePayType(raw)
		if err != nil {
			return Row{}, err.Error()
		}
	}

	return Row{
		EmployeeName:        name,
		JobName:             strings.TrimSpace(get(m.JobName)),
		JobNumber:           strings.TrimSpace(get(m.JobNumber)),
		ActivityCode:        strings.TrimSpace(get(m.ActivityCode)),
		ActivityDescription: strings.TrimSpace(get(m.ActivityDescription)),
		PayType:             payType,
		Hours:               hours,
		BurdenedRate:        CleanNumber(get(m.BurdenedRate)),
		WeekEnding:          strings.TrimSpace(get(m.WeekEnding)),
		Expenses:            expenses,
	}, ""
}

func foldKeys(rec map[string]string) map[string]string {
	folded := make(map[string]string, len(rec))
	for k, v := range rec {
		folded[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return folded
}

func blankCells(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cellFields(header, cells []string) map[string]string {
	fields := make(map[string]string, len(cells))
	for i, c := range cells {
		if i < len(header) && strings.TrimSpace(header[i]) != "" {
			fields[header[i]] = c
		}
	}
	return fields
}

// letterToIndex converts a spreadsheet column letter to a zero-based
// index: A=0, Z=25, AA=26.
func letterToIndex(col string) int {
	n := 0
	for _, r := range col {
		n = n*26 + int(r-'A') + 1
	}
	return n - 1
}

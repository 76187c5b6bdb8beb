package derive

import (
	"regexp"
	"strconv"
)

// NumberingState assigns one invoice number per distinct job in a
// batch, counting up from a seed. State is explicit and returned to
// the caller; there is no package-level counter.
type NumberingState struct {
	Next     int
	Assigned map[string]string
}

// NewNumberingState returns a state that will hand out seed, seed+1,
// and so on.
func NewNumberingState(seed int) *NumberingState {
	return &NumberingState{Next: seed, Assigned: make(map[string]string)}
}

// Assign returns the invoice number for a job key. The first
// encounter of a key allocates the next counter value; later
// encounters reuse it. First-encounter order across the batch
// therefore fixes the numbering order.
func (s *NumberingState) Assign(jobKey string) string {
	if num, ok := s.Assigned[jobKey]; ok {
		return num
	}
	num := strconv.Itoa(s.Next)
	s.Next++
	s.Assigned[jobKey] = num
	return num
}

// AssignNumbers populates InvoiceNumber on each row from the job it
// references, numbering jobs in first-encounter order starting at
// seed. Rows keyed by JobNumber, falling back to JobName when the
// number is blank. The returned slice is a copy; input rows are not
// mutated.
func AssignNumbers(rows []Row, seed int) ([]Row, *NumberingState) {
	state := NewNumberingState(seed)
	out := make([]Row, len(rows))
	for i, row := range rows {
		key := row.JobNumber
		if key == "" {
			key = row.JobName
		}
		row.InvoiceNumber = state.Assign(key)
		out[i] = row
	}
	return out, state
}

var revisionPattern = regexp.MustCompile(`-Rev(\d+)$`)

// SplitRevision splits an invoice number into its base number and
// revision ordinal. Unrevised numbers report revision 0.
func SplitRevision(number string) (base string, rev int) {
	m := revisionPattern.FindStringSubmatch(number)
	if m == nil {
		return number, 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return number, 0
	}
	return number[:len(number)-len(m[0])], n
}

// NextRevision derives the revision number that follows the highest
// existing revision in a base number's family. existing should hold
// every invoice number sharing the base (the base itself may be
// included or not; numbers from other families are ignored).
func NextRevision(number string, existing []string) string {
	base, _ := SplitRevision(number)
	maxRev := 0
	for _, e := range existing {
		eBase, rev := SplitRevision(e)
		if eBase != base {
			continue
		}
		if rev > maxRev {
			maxRev = rev
		}
	}
	return base + "-Rev" + strconv.Itoa(maxRev+1)
}

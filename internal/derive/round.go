// Package derive implements the timesheet-to-invoice derivation engine:
// normalizing raw spreadsheet rows, inferring missing pay rates, folding
// rows into per-invoice aggregates, and assigning invoice numbers.
//
// The engine is a single synchronous pass over an ordered row slice.
// Order matters: rate inference and activity sort tie-breaks depend on
// the order rows arrive in, so callers must not reorder input.
package derive

import (
	"math"
	"strconv"
	"strings"
)

// Round2 rounds to two decimal places, half away from zero. All
// accumulated quantities (hour sums, totals) pass through this after
// every mutation, so cumulative sums match what a spreadsheet displays
// rather than the unrounded ideal.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CleanNumber parses a numeric cell permissively: currency symbols and
// thousands separators are stripped (digits, '.', and '-' survive) and
// anything unparseable comes back as 0.
func CleanNumber(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

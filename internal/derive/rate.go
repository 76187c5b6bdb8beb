package derive

import "github.com/rcalloway/timebill/internal/domain"

// OvertimeMultiplier is the standard overtime premium applied when
// only one of the two pay rates is known and the other must be
// inferred.
const OvertimeMultiplier = 1.5

// Rate is an hourly pay rate that distinguishes "never set" from an
// explicit value. Zero is a legal explicit rate (e.g. unpaid volunteer
// hours) and suppresses inference just like any other explicit value.
type Rate struct {
	set   bool
	value float64
}

// RateOf returns an explicitly-set rate.
func RateOf(v float64) Rate { return Rate{set: true, value: v} }

// IsSet reports whether the rate has been set, explicitly or by
// inference.
func (r Rate) IsSet() bool { return r.set }

// Value returns the rate, or 0 when unset.
func (r Rate) Value() float64 { return r.value }

// ActivityAccumulator holds the running totals for one (employee,
// activity) pair within one invoice. Totals are recomputed from hours
// and rate after every mutation, never incrementally accumulated, so
// they cannot drift from the hours that produced them.
type ActivityAccumulator struct {
	ActivityKey         string
	ActivityCode        string
	ActivityDescription string

	RegularHours  float64
	OvertimeHours float64
	RegularRate   Rate
	OvertimeRate  Rate
	RegularTotal  float64
	OvertimeTotal float64

	// Inferred flags track rates that were derived via the overtime
	// multiplier rather than supplied by a row. An explicit rate for
	// the same pay type clears the flag.
	RegularInferred  bool
	OvertimeInferred bool
}

// Apply merges one canonical row into the accumulator.
//
// The row's explicit rate always wins for its own pay type
// (last-write-wins). The complementary rate is inferred from the
// overtime multiplier only while it is still unset, so explicit data
// is never overwritten by inference. Because of that, processing order
// decides whether inference ever fires.
func (a *ActivityAccumulator) Apply(payType domain.PayType, hours, rate float64) {
	switch payType {
	case domain.PayRegular:
		a.RegularHours = Round2(a.RegularHours + hours)
		a.RegularRate = RateOf(rate)
		a.RegularInferred = false
		a.RegularTotal = Round2(a.RegularHours * rate)
		if !a.OvertimeRate.IsSet() {
			a.OvertimeRate = Rate{set: true, value: Round2(rate * OvertimeMultiplier)}
			a.OvertimeInferred = true
		}
	case domain.PayOvertime:
		a.OvertimeHours = Round2(a.OvertimeHours + hours)
		a.OvertimeRate = RateOf(rate)
		a.OvertimeInferred = false
		a.OvertimeTotal = Round2(a.OvertimeHours * rate)
		if !a.RegularRate.IsSet() {
			a.RegularRate = Rate{set: true, value: Round2(rate / OvertimeMultiplier)}
			a.RegularInferred = true
		}
	}
}

// Total returns the combined labor amount for the activity.
func (a *ActivityAccumulator) Total() float64 {
	return Round2(a.RegularTotal + a.OvertimeTotal)
}

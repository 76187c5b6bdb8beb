package domain

import (
	"fmt"
	"time"
)

// TimesheetEntry is one persisted line of labor for an employee on a job.
type TimesheetEntry struct {
	ID         string
	EmployeeID string
	JobID      string
	ActivityID string // optional
	Date       time.Time
	Hours      float64
	PayType    PayType
	CreatedAt  time.Time
}

func (t *TimesheetEntry) Validate() error {
	if t.EmployeeID == "" {
		return fmt.Errorf("timesheet employee ID is required")
	}
	if t.JobID == "" {
		return fmt.Errorf("timesheet job ID is required")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("timesheet date is required")
	}
	if t.Hours < 0 {
		return fmt.Errorf("hours must not be negative, got %.2f", t.Hours)
	}
	if t.PayType != PayRegular && t.PayType != PayOvertime {
		return fmt.Errorf("pay type must be Regular or Overtime, got %q", t.PayType)
	}
	return nil
}

// WeekEnding rolls a date forward to the Sunday that closes its pay week.
// A date already on Sunday is returned unchanged.
func WeekEnding(d time.Time) time.Time {
	days := (7 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, days)
}

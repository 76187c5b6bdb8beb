package domain

import "time"

// PayHistoryEntry records one employee pay rate as of a date. A new
// entry is appended when an employee is created and whenever either
// rate changes; existing entries are never rewritten.
type PayHistoryEntry struct {
	ID            string
	EmployeeID    string
	RegularRate   float64
	OvertimeRate  float64
	EffectiveDate time.Time
	Kind          PayChangeKind
	CreatedAt     time.Time
}

// PayRateChange is one row of the rate-change report: an employee
// whose rate moved within a queried date window.
type PayRateChange struct {
	EmployeeID      string
	EmployeeName    string
	EECode          string
	OldRegularRate  float64
	NewRegularRate  float64
	OldOvertimeRate float64
	NewOvertimeRate float64
	ChangedAt       time.Time
}

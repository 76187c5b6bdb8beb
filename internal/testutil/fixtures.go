package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rcalloway/timebill/internal/domain"
)

var testCodeCounter atomic.Int64

// Employee options
type EmployeeOption func(*domain.Employee)

func WithRates(regular, overtime float64) EmployeeOption {
	return func(e *domain.Employee) {
		e.RegularRate = regular
		e.OvertimeRate = overtime
	}
}

func WithEECode(code string) EmployeeOption {
	return func(e *domain.Employee) {
		e.EECode = code
	}
}

func defaultEECode(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 2; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 2 {
		letters = append(letters, 'X')
	}
	n := testCodeCounter.Add(1)
	return fmt.Sprintf("%s%03d", string(letters), n)
}

// NewTestEmployee builds an employee named "first last" split on the
// first space, with a unique employee code.
func NewTestEmployee(name string, opts ...EmployeeOption) *domain.Employee {
	now := time.Now().UTC()
	first, last := name, ""
	if i := strings.Index(name, " "); i >= 0 {
		first, last = name[:i], name[i+1:]
	}
	e := &domain.Employee{
		ID:           uuid.New().String(),
		EECode:       defaultEECode(name),
		FirstName:    first,
		LastName:     last,
		RegularRate:  20,
		OvertimeRate: 30,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Job options
type JobOption func(*domain.Job)

func WithClient(client string) JobOption {
	return func(j *domain.Job) {
		j.ClientName = client
	}
}

func WithJobNumber(number string) JobOption {
	return func(j *domain.Job) {
		j.JobNumber = number
	}
}

func NewTestJob(name string, opts ...JobOption) *domain.Job {
	now := time.Now().UTC()
	n := testCodeCounter.Add(1)
	j := &domain.Job{
		ID:        uuid.New().String(),
		JobNumber: fmt.Sprintf("J-%03d", n),
		JobName:   name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func NewTestActivity(jobID, code, description string) *domain.Activity {
	return &domain.Activity{
		ID:          uuid.New().String(),
		JobID:       jobID,
		Code:        code,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// Timesheet options
type EntryOption func(*domain.TimesheetEntry)

func WithActivityID(id string) EntryOption {
	return func(t *domain.TimesheetEntry) {
		t.ActivityID = id
	}
}

func WithPayType(p domain.PayType) EntryOption {
	return func(t *domain.TimesheetEntry) {
		t.PayType = p
	}
}

func NewTestEntry(employeeID, jobID string, date time.Time, hours float64, opts ...EntryOption) *domain.TimesheetEntry {
	e := &domain.TimesheetEntry{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		JobID:      jobID,
		Date:       date,
		Hours:      hours,
		PayType:    domain.PayRegular,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

type Job struct {
	ID          string
	JobNumber   string
	JobName     string
	Description string
	ClientName  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (j *Job) Validate() error {
	if strings.TrimSpace(j.JobNumber) == "" {
		return fmt.Errorf("job number is required")
	}
	if strings.TrimSpace(j.JobName) == "" {
		return fmt.Errorf("job name is required")
	}
	return nil
}

// Activity is a billable task code scoped to one job.
type Activity struct {
	ID          string
	JobID       string
	Code        string
	Description string
	CreatedAt   time.Time
}

func (a *Activity) Validate() error {
	if a.JobID == "" {
		return fmt.Errorf("activity job ID is required")
	}
	if strings.TrimSpace(a.Code) == "" && strings.TrimSpace(a.Description) == "" {
		return fmt.Errorf("activity needs a code or a description")
	}
	return nil
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

type Employee struct {
	ID           string
	EECode       string
	FirstName    string
	LastName     string
	RegularRate  float64
	OvertimeRate float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns "First Last" with blank parts collapsed.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e *Employee) Validate() error {
	if strings.TrimSpace(e.EECode) == "" {
		return fmt.Errorf("employee code is required")
	}
	if strings.TrimSpace(e.FirstName) == "" && strings.TrimSpace(e.LastName) == "" {
		return fmt.Errorf("employee name is required")
	}
	if e.RegularRate < 0 {
		return fmt.Errorf("regular rate must not be negative, got %.2f", e.RegularRate)
	}
	if e.OvertimeRate < 0 {
		return fmt.Errorf("overtime rate must not be negative, got %.2f", e.OvertimeRate)
	}
	return nil
}

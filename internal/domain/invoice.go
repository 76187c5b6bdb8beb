package domain

import (
	"fmt"
	"strings"
	"time"
)

// Invoice is one persisted, numbered invoice for a job and pay week.
type Invoice struct {
	ID            string
	JobID         string
	InvoiceNumber string
	WeekEnding    time.Time
	TotalAmount   float64
	InvoiceDate   time.Time
	DueDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (i *Invoice) Validate() error {
	if i.JobID == "" {
		return fmt.Errorf("invoice job ID is required")
	}
	if strings.TrimSpace(i.InvoiceNumber) == "" {
		return fmt.Errorf("invoice number is required")
	}
	return nil
}

// BaseNumber strips any -RevN suffix, returning the number the
// revision family shares.
func (i *Invoice) BaseNumber() string {
	if idx := strings.Index(i.InvoiceNumber, "-"); idx >= 0 {
		return i.InvoiceNumber[:idx]
	}
	return i.InvoiceNumber
}

// InvoiceLine is the flat per-employee-per-activity record an invoice
// is stored with. Rendering layers rebuild the nested view from these.
type InvoiceLine struct {
	ID                  string
	InvoiceID           string
	EmployeeName        string
	ActivityDescription string
	RegularHours        float64
	OvertimeHours       float64
	RegularRate         float64
	OvertimeRate        float64
	TotalAmount         float64
}

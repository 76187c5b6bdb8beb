package api

import (
	"fmt"
	"time"

	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/rcalloway/timebill/internal/service"
)

type employeePayload struct {
	ID           string  `json:"id,omitempty"`
	EECode       string  `json:"ee_code"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	RegularRate  float64 `json:"regular_rate"`
	OvertimeRate float64 `json:"overtime_rate"`
}

func (p employeePayload) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:           p.ID,
		EECode:       p.EECode,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		RegularRate:  p.RegularRate,
		OvertimeRate: p.OvertimeRate,
	}
}

func employeeJSON(e *domain.Employee) employeePayload {
	return employeePayload{
		ID:           e.ID,
		EECode:       e.EECode,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		RegularRate:  e.RegularRate,
		OvertimeRate: e.OvertimeRate,
	}
}

type jobPayload struct {
	ID          string `json:"id,omitempty"`
	JobNumber   string `json:"job_number"`
	JobName     string `json:"job_name"`
	Description string `json:"description,omitempty"`
	ClientName  string `json:"client_name,omitempty"`
}

func (p jobPayload) toDomain() *domain.Job {
	return &domain.Job{
		ID:          p.ID,
		JobNumber:   p.JobNumber,
		JobName:     p.JobName,
		Description: p.Description,
		ClientName:  p.ClientName,
	}
}

func jobJSON(j *domain.Job) jobPayload {
	return jobPayload{
		ID:          j.ID,
		JobNumber:   j.JobNumber,
		JobName:     j.JobName,
		Description: j.Description,
		ClientName:  j.ClientName,
	}
}

type activityPayload struct {
	ID          string `json:"id,omitempty"`
	JobID       string `json:"job_id,omitempty"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func activityJSON(a *domain.Activity) activityPayload {
	return activityPayload{ID: a.ID, JobID: a.JobID, Code: a.Code, Description: a.Description}
}

type timesheetPayload struct {
	ID         string  `json:"id,omitempty"`
	EmployeeID string  `json:"employee_id"`
	JobID      string  `json:"job_id"`
	ActivityID string  `json:"activity_id,omitempty"`
	Date       string  `json:"date"`
	Hours      float64 `json:"hours"`
	PayType    string  `json:"pay_type,omitempty"`
}

func (p timesheetPayload) toDomain() (*domain.TimesheetEntry, error) {
	date, err := time.Parse(time.DateOnly, p.Date)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	entry := &domain.TimesheetEntry{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		JobID:      p.JobID,
		ActivityID: p.ActivityID,
		Date:       date,
		Hours:      p.Hours,
	}
	if p.PayType != "" {
		payType, err := domain.ParsePayType(p.PayType)
		if err != nil {
			return nil, err
		}
		entry.PayType = payType
	}
	return entry, nil
}

func timesheetJSON(t *domain.TimesheetEntry) timesheetPayload {
	return timesheetPayload{
		ID:         t.ID,
		EmployeeID: t.EmployeeID,
		JobID:      t.JobID,
		ActivityID: t.ActivityID,
		Date:       t.Date.Format(time.DateOnly),
		Hours:      t.Hours,
		PayType:    string(t.PayType),
	}
}

type invoicePayload struct {
	ID            string  `json:"id"`
	JobID         string  `json:"job_id"`
	InvoiceNumber string  `json:"invoice_number"`
	WeekEnding    string  `json:"week_ending"`
	TotalAmount   float64 `json:"total_amount"`
	InvoiceDate   string  `json:"invoice_date"`
	DueDate       string  `json:"due_date,omitempty"`
}

func invoiceJSON(inv *domain.Invoice) invoicePayload {
	p := invoicePayload{
		ID:            inv.ID,
		JobID:         inv.JobID,
		InvoiceNumber: inv.InvoiceNumber,
		WeekEnding:    inv.WeekEnding.Format(time.DateOnly),
		TotalAmount:   inv.TotalAmount,
		InvoiceDate:   inv.InvoiceDate.Format(time.DateOnly),
	}
	if inv.DueDate != nil {
		p.DueDate = inv.DueDate.Format(time.DateOnly)
	}
	return p
}

type invoiceLinePayload struct {
	ID                  string  `json:"id,omitempty"`
	EmployeeName        string  `json:"employee_name"`
	ActivityDescription string  `json:"activity_description,omitempty"`
	RegularHours        float64 `json:"regular_hours"`
	OvertimeHours       float64 `json:"overtime_hours"`
	RegularRate         float64 `json:"regular_rate"`
	OvertimeRate        float64 `json:"overtime_rate"`
	TotalAmount         float64 `json:"total_amount"`
}

func (p invoiceLinePayload) toDomain() domain.InvoiceLine {
	return domain.InvoiceLine{
		ID:                  p.ID,
		EmployeeName:        p.EmployeeName,
		ActivityDescription: p.ActivityDescription,
		RegularHours:        p.RegularHours,
		OvertimeHours:       p.OvertimeHours,
		RegularRate:         p.RegularRate,
		OvertimeRate:        p.OvertimeRate,
		TotalAmount:         p.TotalAmount,
	}
}

func invoiceLineJSON(l domain.InvoiceLine) invoiceLinePayload {
	return invoiceLinePayload{
		ID:                  l.ID,
		EmployeeName:        l.EmployeeName,
		ActivityDescription: l.ActivityDescription,
		RegularHours:        l.RegularHours,
		OvertimeHours:       l.OvertimeHours,
		RegularRate:         l.RegularRate,
		OvertimeRate:        l.OvertimeRate,
		TotalAmount:         l.TotalAmount,
	}
}

type rowPayload struct {
	EmployeeName        string  `json:"employee_name"`
	JobName             string  `json:"job_name,omitempty"`
	JobNumber           string  `json:"job_number"`
	ActivityCode        string  `json:"activity_code,omitempty"`
	ActivityDescription string  `json:"activity_description,omitempty"`
	PayType             string  `json:"pay_type,omitempty"`
	Hours               float64 `json:"hours"`
	BurdenedRate        float64 `json:"burdened_rate"`
	PerDiem             float64 `json:"per_diem,omitempty"`
	Mileage             float64 `json:"mileage,omitempty"`
	SafetyEquipment     float64 `json:"safety_equipment,omitempty"`
}

func (p rowPayload) toRow(weekEnding string) (derive.Row, error) {
	expenses := derive.Expenses{
		PerDiem:         p.PerDiem,
		Mileage:         p.Mileage,
		SafetyEquipment: p.SafetyEquipment,
	}

	// Expense-only rows carry no labor, so pay_type is optional there.
	payType := domain.PayRegular
	if p.PayType != "" || p.Hours != 0 || expenses == (derive.Expenses{}) {
		var err error
		payType, err = domain.ParsePayType(p.PayType)
		if err != nil {
			return derive.Row{}, err
		}
	}

	return derive.Row{
		EmployeeName:        p.EmployeeName,
		JobName:             p.JobName,
		JobNumber:           p.JobNumber,
		ActivityCode:        p.ActivityCode,
		ActivityDescription: p.ActivityDescription,
		PayType:             payType,
		Hours:               p.Hours,
		BurdenedRate:        p.BurdenedRate,
		WeekEnding:          weekEnding,
		Expenses:            expenses,
	}, nil
}

type skippedRowPayload struct {
	Index  int               `json:"index"`
	Reason string            `json:"reason"`
	Fields map[string]string `json:"fields,omitempty"`
}

type activityTotalPayload struct {
	ActivityKey   string  `json:"activity_key"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	Total         float64 `json:"total"`
}

type generatedInvoicePayload struct {
	Invoice            invoicePayload         `json:"invoice"`
	TotalRegularHours  float64                `json:"total_regular_hours"`
	TotalOvertimeHours float64                `json:"total_overtime_hours"`
	TotalExpenses      float64                `json:"total_expenses"`
	PerActivity        []activityTotalPayload `json:"per_activity"`
	Warnings           []string               `json:"warnings,omitempty"`
}

type generateResponse struct {
	Invoices           []generatedInvoicePayload `json:"invoices"`
	InvoiceCount       int                       `json:"invoice_count"`
	TotalRegularHours  float64                   `json:"total_regular_hours"`
	TotalOvertimeHours float64                   `json:"total_overtime_hours"`
	TotalAmount        float64                   `json:"total_amount"`
	Skipped            []skippedRowPayload       `json:"skipped,omitempty"`
}

func generateJSON(result *service.GenerateResult) generateResponse {
	resp := generateResponse{
		InvoiceCount:       result.Combined.InvoiceCount,
		TotalRegularHours:  result.Combined.TotalRegularHours,
		TotalOvertimeHours: result.Combined.TotalOvertimeHours,
		TotalAmount:        result.Combined.TotalAmount,
	}
	for _, gen := range result.Invoices {
		p := generatedInvoicePayload{
			Invoice:            invoiceJSON(gen.Invoice),
			TotalRegularHours:  gen.Totals.TotalRegularHours,
			TotalOvertimeHours: gen.Totals.TotalOvertimeHours,
			TotalExpenses:      gen.Totals.TotalExpenses,
			Warnings:           gen.Totals.Warnings,
		}
		for _, at := range gen.Totals.PerActivity {
			p.PerActivity = append(p.PerActivity, activityTotalPayload{
				ActivityKey:   at.ActivityKey,
				RegularHours:  at.RegularHours,
				OvertimeHours: at.OvertimeHours,
				Total:         at.Total,
			})
		}
		resp.Invoices = append(resp.Invoices, p)
	}
	for _, s := range result.Skipped {
		resp.Skipped = append(resp.Skipped, skippedRowPayload{Index: s.Index, Reason: s.Reason, Fields: s.Fields})
	}
	return resp
}

type payHistoryPayload struct {
	RegularRate   float64 `json:"regular_rate"`
	OvertimeRate  float64 `json:"overtime_rate"`
	EffectiveDate string  `json:"effective_date"`
	Kind          string  `json:"kind"`
}

func payHistoryJSON(h *domain.PayHistoryEntry) payHistoryPayload {
	return payHistoryPayload{
		RegularRate:   h.RegularRate,
		OvertimeRate:  h.OvertimeRate,
		EffectiveDate: h.EffectiveDate.Format(time.DateOnly),
		Kind:          string(h.Kind),
	}
}

type payRateChangePayload struct {
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name"`
	EECode          string  `json:"ee_code"`
	OldRegularRate  float64 `json:"old_regular_rate"`
	NewRegularRate  float64 `json:"new_regular_rate"`
	OldOvertimeRate float64 `json:"old_overtime_rate"`
	NewOvertimeRate float64 `json:"new_overtime_rate"`
	ChangedAt       string  `json:"changed_at"`
}

func payRateChangeJSON(c domain.PayRateChange) payRateChangePayload {
	return payRateChangePayload{
		EmployeeID:      c.EmployeeID,
		EmployeeName:    c.EmployeeName,
		EECode:          c.EECode,
		OldRegularRate:  c.OldRegularRate,
		NewRegularRate:  c.NewRegularRate,
		OldOvertimeRate: c.OldOvertimeRate,
		NewOvertimeRate: c.NewOvertimeRate,
		ChangedAt:       c.ChangedAt.Format(time.DateOnly),
	}
}

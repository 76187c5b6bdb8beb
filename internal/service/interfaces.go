package service

import (
	"context"
	"time"

	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/domain"
)

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByCode(ctx context.Context, eeCode string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
	PayHistory(ctx context.Context, employeeID string) ([]*domain.PayHistoryEntry, error)
	RateChanges(ctx context.Context, start, end time.Time) ([]domain.PayRateChange, error)
}

type JobService interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	GetByNumber(ctx context.Context, jobNumber string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) error
	Delete(ctx context.Context, id string) error
	AddActivity(ctx context.Context, a *domain.Activity) error
	ListActivities(ctx context.Context, jobID string) ([]*domain.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
}

type TimesheetService interface {
	Log(ctx context.Context, t *domain.TimesheetEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimesheetEntry, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.TimesheetEntry, error)
	WeekDetails(ctx context.Context, weekEnding time.Time) ([]derive.Row, error)
	Delete(ctx context.Context, id string) error
}

// GeneratedInvoice pairs a persisted invoice with the aggregate and
// totals it was derived from.
type GeneratedInvoice struct {
	Invoice   *domain.Invoice
	Aggregate *derive.InvoiceAggregate
	Totals    derive.InvoiceTotals
}

// GenerateResult is the outcome of one invoice generation run.
type GenerateResult struct {
	Invoices []GeneratedInvoice
	Combined derive.CombinedTotals
	Skipped  []derive.SkippedRow
}

type InvoiceService interface {
	// GenerateFromRows numbers, aggregates, and persists one batch of
	// canonical rows. Seed is the starting invoice number for jobs
	// never billed before; already-seeded scopes continue their
	// sequence.
	GenerateFromRows(ctx context.Context, rows []derive.Row, seed int, weekEnding time.Time) (*GenerateResult, error)
	// GenerateForWeek derives rows from the stored timesheets in the
	// week ending at weekEnding and generates invoices from them.
	GenerateForWeek(ctx context.Context, weekEnding time.Time, seed int) (*GenerateResult, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	List(ctx context.Context) ([]*domain.Invoice, error)
	Lines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error)
	// Revise clones an invoice under the next free -RevN number for its
	// base, carrying the given replacement lines and total.
	Revise(ctx context.Context, invoiceID string, lines []domain.InvoiceLine, totalAmount float64) (*domain.Invoice, error)
	Delete(ctx context.Context, id string) error
}

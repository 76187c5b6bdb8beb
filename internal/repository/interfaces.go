package repository

import (
	"context"
	"time"

	"github.com/rcalloway/timebill/internal/domain"
)

// TimesheetDetail is a joined view of a timesheet entry with the
// employee, job, and activity it references, ready for normalization
// into an invoice row.
type TimesheetDetail struct {
	Entry               domain.TimesheetEntry
	EmployeeName        string
	EECode              string
	RegularRate         float64
	OvertimeRate        float64
	JobName             string
	JobNumber           string
	ActivityCode        string
	ActivityDescription string
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByCode(ctx context.Context, eeCode string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
}

type JobRepo interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	GetByNumber(ctx context.Context, jobNumber string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) error
	Delete(ctx context.Context, id string) error
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	ListByJob(ctx context.Context, jobID string) ([]*domain.Activity, error)
	Delete(ctx context.Context, id string) error
}

type TimesheetRepo interface {
	Create(ctx context.Context, t *domain.TimesheetEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimesheetEntry, error)
	ListByWeek(ctx context.Context, weekEnding time.Time) ([]TimesheetDetail, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.TimesheetEntry, error)
	Delete(ctx context.Context, id string) error
}

type InvoiceRepo interface {
	Create(ctx context.Context, inv *domain.Invoice, lines []domain.InvoiceLine) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	List(ctx context.Context) ([]*domain.Invoice, error)
	ListLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error)
	// ListNumbersByBase returns every invoice number whose base (the
	// number with any -RevN suffix stripped) equals base.
	ListNumbersByBase(ctx context.Context, base string) ([]string, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	Delete(ctx context.Context, id string) error
	// NextSeed atomically reserves count invoice numbers for a scope
	// and returns the first, seeding the allocator at seed when the
	// scope has never been used.
	NextSeed(ctx context.Context, scope string, seed, count int) (int, error)
}

type PayHistoryRepo interface {
	Append(ctx context.Context, h *domain.PayHistoryEntry) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.PayHistoryEntry, error)
	// ChangesInWindow reports employees whose rates moved within
	// [start, end], pairing each change with the rate that preceded it.
	ChangesInWindow(ctx context.Context, start, end time.Time) ([]domain.PayRateChange, error)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rcalloway/timebill/internal/db"
	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/rcalloway/timebill/internal/repository"
)

// sequenceScope is the allocator scope shared by every generation run.
// All jobs draw numbers from one counter so batches never reuse a
// number even across restarts.
const sequenceScope = "default"

type invoiceService struct {
	invoices   repository.InvoiceRepo
	timesheets repository.TimesheetRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewInvoiceService(
	invoices repository.InvoiceRepo,
	timesheets repository.TimesheetRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) InvoiceService {
	return &invoiceService{
		invoices:   invoices,
		timesheets: timesheets,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *invoiceService) GenerateFromRows(ctx context.Context, rows []derive.Row, seed int, weekEnding time.Time) (result *GenerateResult, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"rows": len(rows)}
		if result != nil {
			fields["invoices"] = len(result.Invoices)
			fields["skipped"] = len(result.Skipped)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-invoices",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if len(rows) == 0 {
		return &GenerateResult{}, nil
	}

	result = &GenerateResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txInvoices := repository.NewSQLiteInvoiceRepo(tx)
		txJobs := repository.NewSQLiteJobRepo(tx)

		// Reserve one number per distinct job before assigning, so a
		// concurrent batch can never interleave into our range.
		first, err := txInvoices.NextSeed(ctx, sequenceScope, seed, countJobKeys(rows))
		if err != nil {
			return err
		}

		numbered, _ := derive.AssignNumbers(rows, first)
		batch := derive.Aggregate(numbered)
		result.Skipped = append(result.Skipped, batch.Skipped...)

		now := time.Now().UTC()
		var allTotals []derive.InvoiceTotals
		for _, agg := range batch.InvoicesInOrder() {
			job, err := txJobs.GetByNumber(ctx, agg.JobNumber)
			if err != nil {
				result.Skipped = append(result.Skipped, derive.SkippedRow{
					Index:  -1,
					Reason: "unknown job",
					Fields: map[string]string{"invoice": agg.InvoiceNumber, "job": agg.JobNumber},
				})
				continue
			}

			// Rows only carry job name and number; the client on the
			// invoice header comes from the job record.
			agg.ClientName = job.ClientName

			totals := derive.ComputeTotals(agg)
			inv := &domain.Invoice{
				ID:            uuid.New().String(),
				JobID:         job.ID,
				InvoiceNumber: agg.InvoiceNumber,
				WeekEnding:    weekEnding,
				TotalAmount:   totals.TotalAmount,
				InvoiceDate:   now,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := txInvoices.Create(ctx, inv, linesFromAggregate(inv.ID, agg)); err != nil {
				return fmt.Errorf("persisting invoice %s: %w", inv.InvoiceNumber, err)
			}

			allTotals = append(allTotals, totals)
			result.Invoices = append(result.Invoices, GeneratedInvoice{
				Invoice:   inv,
				Aggregate: agg,
				Totals:    totals,
			})
		}
		result.Combined = derive.Combine(allTotals)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *invoiceService) GenerateForWeek(ctx context.Context, weekEnding time.Time, seed int) (*GenerateResult, error) {
	details, err := s.timesheets.ListByWeek(ctx, weekEnding)
	if err != nil {
		return nil, err
	}
	return s.GenerateFromRows(ctx, rowsFromDetails(details, weekEnding), seed, weekEnding)
}

func (s *invoiceService) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *invoiceService) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	return s.invoices.GetByNumber(ctx, invoiceNumber)
}

func (s *invoiceService) List(ctx context.Context) ([]*domain.Invoice, error) {
	return s.invoices.List(ctx)
}

func (s *invoiceService) Lines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	return s.invoices.ListLines(ctx, invoiceID)
}

// Revise clones an invoice under the next free revision number for its
// base. Reading the existing family and inserting happen in one
// transaction; the unique index on invoice numbers catches the race two
// concurrent revisions would otherwise win together.
func (s *invoiceService) Revise(ctx context.Context, invoiceID string, lines []domain.InvoiceLine, totalAmount float64) (*domain.Invoice, error) {
	var revised *domain.Invoice
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txInvoices := repository.NewSQLiteInvoiceRepo(tx)

		orig, err := txInvoices.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		existing, err := txInvoices.ListNumbersByBase(ctx, orig.BaseNumber())
		if err != nil {
			return err
		}

		if lines == nil {
			lines, err = txInvoices.ListLines(ctx, invoiceID)
			if err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		revised = &domain.Invoice{
			ID:            uuid.New().String(),
			JobID:         orig.JobID,
			InvoiceNumber: derive.NextRevision(orig.InvoiceNumber, existing),
			WeekEnding:    orig.WeekEnding,
			TotalAmount:   totalAmount,
			InvoiceDate:   now,
			DueDate:       orig.DueDate,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		for i := range lines {
			lines[i].ID = uuid.New().String()
			lines[i].InvoiceID = revised.ID
		}
		return txInvoices.Create(ctx, revised, lines)
	})
	if err != nil {
		return nil, err
	}
	return revised, nil
}

func (s *invoiceService) Delete(ctx context.Context, id string) error {
	return s.invoices.Delete(ctx, id)
}

// countJobKeys counts the distinct jobs in a batch, keyed the same way
// number assignment keys them.
func countJobKeys(rows []derive.Row) int {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		key := r.JobNumber
		if key == "" {
			key = r.JobName
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

// linesFromAggregate flattens an aggregate's employee lines into the
// persisted per-employee-per-activity records.
func linesFromAggregate(invoiceID string, agg *derive.InvoiceAggregate) []domain.InvoiceLine {
	var lines []domain.InvoiceLine
	for _, el := range agg.EmployeesInOrder() {
		switch el.Kind {
		case derive.LineActivityBreakdown:
			for _, acc := range el.ActivitiesInOrder() {
				lines = append(lines, domain.InvoiceLine{
					ID:                  uuid.New().String(),
					InvoiceID:           invoiceID,
					EmployeeName:        el.EmployeeName,
					ActivityDescription: acc.ActivityKey,
					RegularHours:        acc.RegularHours,
					OvertimeHours:       acc.OvertimeHours,
					RegularRate:         acc.RegularRate.Value(),
					OvertimeRate:        acc.OvertimeRate.Value(),
					TotalAmount:         acc.Total(),
				})
			}
		case derive.LineDirectHours, derive.LineExpenseOnly:
			lines = append(lines, domain.InvoiceLine{
				ID:           uuid.New().String(),
				InvoiceID:    invoiceID,
				EmployeeName: el.EmployeeName,
				RegularHours: el.Hours,
				RegularRate:  el.Rate,
				TotalAmount:  derive.LineTotal(el),
			})
		}
	}
	return lines
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rcalloway/timebill/internal/db"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/rcalloway/timebill/internal/repository"
)

type employeeService struct {
	employees  repository.EmployeeRepo
	payHistory repository.PayHistoryRepo
	uow        db.UnitOfWork
}

func NewEmployeeService(employees repository.EmployeeRepo, payHistory repository.PayHistoryRepo, uow db.UnitOfWork) EmployeeService {
	return &employeeService{employees: employees, payHistory: payHistory, uow: uow}
}

// Create persists an employee together with the initial entry of their
// pay history. The two writes share a transaction: an employee without
// a history row would make the rate-change report silently wrong.
func (s *employeeService) Create(ctx context.Context, e *domain.Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployees := repository.NewSQLiteEmployeeRepo(tx)
		txHistory := repository.NewSQLitePayHistoryRepo(tx)

		if err := txEmployees.Create(ctx, e); err != nil {
			return err
		}
		return txHistory.Append(ctx, &domain.PayHistoryEntry{
			ID:            uuid.New().String(),
			EmployeeID:    e.ID,
			RegularRate:   e.RegularRate,
			OvertimeRate:  e.OvertimeRate,
			EffectiveDate: now,
			Kind:          domain.ChangeInitial,
			CreatedAt:     now,
		})
	})
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *employeeService) GetByCode(ctx context.Context, eeCode string) (*domain.Employee, error) {
	return s.employees.GetByCode(ctx, eeCode)
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

// Update rewrites an employee and, when either hourly rate moved,
// appends the change to their pay history within the same transaction.
func (s *employeeService) Update(ctx context.Context, e *domain.Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	e.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployees := repository.NewSQLiteEmployeeRepo(tx)
		txHistory := repository.NewSQLitePayHistoryRepo(tx)

		prev, err := txEmployees.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		if err := txEmployees.Update(ctx, e); err != nil {
			return err
		}
		if prev.RegularRate == e.RegularRate && prev.OvertimeRate == e.OvertimeRate {
			return nil
		}
		return txHistory.Append(ctx, &domain.PayHistoryEntry{
			ID:            uuid.New().String(),
			EmployeeID:    e.ID,
			RegularRate:   e.RegularRate,
			OvertimeRate:  e.OvertimeRate,
			EffectiveDate: now,
			Kind:          domain.ChangeUpdate,
			CreatedAt:     now,
		})
	})
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	return s.employees.Delete(ctx, id)
}

func (s *employeeService) PayHistory(ctx context.Context, employeeID string) ([]*domain.PayHistoryEntry, error) {
	return s.payHistory.ListByEmployee(ctx, employeeID)
}

func (s *employeeService) RateChanges(ctx context.Context, start, end time.Time) ([]domain.PayRateChange, error) {
	return s.payHistory.ChangesInWindow(ctx, start, end)
}

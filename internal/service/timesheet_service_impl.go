package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/rcalloway/timebill/internal/repository"
)

type timesheetService struct {
	timesheets repository.TimesheetRepo
}

func NewTimesheetService(timesheets repository.TimesheetRepo) TimesheetService {
	return &timesheetService{timesheets: timesheets}
}

func (s *timesheetService) Log(ctx context.Context, t *domain.TimesheetEntry) error {
	if t.PayType == "" {
		t.PayType = domain.PayRegular
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.CreatedAt = time.Now().UTC()
	return s.timesheets.Create(ctx, t)
}

func (s *timesheetService) GetByID(ctx context.Context, id string) (*domain.TimesheetEntry, error) {
	return s.timesheets.GetByID(ctx, id)
}

func (s *timesheetService) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.TimesheetEntry, error) {
	return s.timesheets.ListByEmployee(ctx, employeeID)
}

// WeekDetails returns the week's stored timesheet entries already
// converted to canonical rows, ready for aggregation or preview.
func (s *timesheetService) WeekDetails(ctx context.Context, weekEnding time.Time) ([]derive.Row, error) {
	details, err := s.timesheets.ListByWeek(ctx, weekEnding)
	if err != nil {
		return nil, err
	}
	return rowsFromDetails(details, weekEnding), nil
}

func (s *timesheetService) Delete(ctx context.Context, id string) error {
	return s.timesheets.Delete(ctx, id)
}

// rowsFromDetails converts joined timesheet records to canonical rows.
// The burdened rate is picked from the employee's stored rates by the
// entry's pay type, so a stored overtime entry never rides on the
// regular rate.
func rowsFromDetails(details []repository.TimesheetDetail, weekEnding time.Time) []derive.Row {
	rows := make([]derive.Row, 0, len(details))
	for _, d := range details {
		rate := d.RegularRate
		if d.Entry.PayType == domain.PayOvertime {
			rate = d.OvertimeRate
		}
		rows = append(rows, derive.Row{
			EmployeeName:        d.EmployeeName,
			JobName:             d.JobName,
			JobNumber:           d.JobNumber,
			ActivityCode:        d.ActivityCode,
			ActivityDescription: d.ActivityDescription,
			PayType:             d.Entry.PayType,
			Hours:               d.Entry.Hours,
			BurdenedRate:        rate,
			WeekEnding:          weekEnding.Format("2006-01-02"),
		})
	}
	return rows
}

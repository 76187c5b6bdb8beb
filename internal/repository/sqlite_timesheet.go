package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rcalloway/timebill/internal/db"
	"github.com/rcalloway/timebill/internal/domain"
)

// SQLiteTimesheetRepo implements TimesheetRepo using a SQLite database.
type SQLiteTimesheetRepo struct {
	db db.DBTX
}

// NewSQLiteTimesheetRepo creates a new SQLiteTimesheetRepo.
func NewSQLiteTimesheetRepo(conn db.DBTX) *SQLiteTimesheetRepo {
	return &SQLiteTimesheetRepo{db: conn}
}

func (r *SQLiteTimesheetRepo) Create(ctx context.Context, t *domain.TimesheetEntry) error {
	query := `INSERT INTO timesheets (id, employee_id, job_id, activity_id, date, hours, pay_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.EmployeeID,
		t.JobID,
		nullableStrToValue(t.ActivityID),
		t.Date.Format(dateLayout),
		t.Hours,
		string(t.PayType),
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting timesheet entry: %w", err)
	}
	return nil
}

func (r *SQLiteTimesheetRepo) GetByID(ctx context.Context, id string) (*domain.TimesheetEntry, error) {
	query := `SELECT id, employee_id, job_id, activity_id, date, hours, pay_type, created_at
		FROM timesheets WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var t domain.TimesheetEntry
	var activityID sql.NullString
	var dateStr, payTypeStr, createdAtStr string
	err := row.Scan(&t.ID, &t.EmployeeID, &t.JobID, &activityID, &dateStr, &t.Hours, &payTypeStr, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("timesheet entry not found")
		}
		return nil, fmt.Errorf("scanning timesheet entry: %w", err)
	}
	return finishTimesheet(&t, activityID, dateStr, payTypeStr, createdAtStr)
}

// ListByWeek returns every timesheet entry in the 7-day window ending
// at weekEnding, joined with the employee, job, and activity rows the
// invoice generator needs.
func (r *SQLiteTimesheetRepo) ListByWeek(ctx context.Context, weekEnding time.Time) ([]TimesheetDetail, error) {
	query := `SELECT t.id, t.employee_id, t.job_id, t.activity_id, t.date, t.hours, t.pay_type, t.created_at,
			e.first_name, e.last_name, e.ee_code, e.regular_rate, e.overtime_rate,
			j.job_name, j.job_number,
			COALESCE(a.activity_code, ''), COALESCE(a.activity_description, '')
		FROM timesheets t
		JOIN employees e ON e.id = t.employee_id
		JOIN jobs j ON j.id = t.job_id
		LEFT JOIN activities a ON a.id = t.activity_id
		WHERE t.date BETWEEN date(?, '-7 days') AND ?
		ORDER BY t.date, t.created_at, t.id`
	we := weekEnding.Format(dateLayout)
	rows, err := r.db.QueryContext(ctx, query, we, we)
	if err != nil {
		return nil, fmt.Errorf("listing timesheet week: %w", err)
	}
	defer rows.Close()

	var details []TimesheetDetail
	for rows.Next() {
		var d TimesheetDetail
		var activityID sql.NullString
		var firstName, lastName string
		var dateStr, payTypeStr, createdAtStr string
		err := rows.Scan(
			&d.Entry.ID, &d.Entry.EmployeeID, &d.Entry.JobID, &activityID,
			&dateStr, &d.Entry.Hours, &payTypeStr, &createdAtStr,
			&firstName, &lastName, &d.EECode, &d.RegularRate, &d.OvertimeRate,
			&d.JobName, &d.JobNumber,
			&d.ActivityCode, &d.ActivityDescription,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning timesheet detail: %w", err)
		}
		if _, err := finishTimesheet(&d.Entry, activityID, dateStr, payTypeStr, createdAtStr); err != nil {
			return nil, err
		}
		d.EmployeeName = (&domain.Employee{FirstName: firstName, LastName: lastName}).FullName()
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timesheet details: %w", err)
	}
	return details, nil
}

func (r *SQLiteTimesheetRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.TimesheetEntry, error) {
	query := `SELECT id, employee_id, job_id, activity_id, date, hours, pay_type, created_at
		FROM timesheets WHERE employee_id = ? ORDER BY date, created_at`
	rows, err := r.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing timesheet entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimesheetEntry
	for rows.Next() {
		var t domain.TimesheetEntry
		var activityID sql.NullString
		var dateStr, payTypeStr, createdAtStr string
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.JobID, &activityID, &dateStr, &t.Hours, &payTypeStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning timesheet row: %w", err)
		}
		entry, err := finishTimesheet(&t, activityID, dateStr, payTypeStr, createdAtStr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timesheet entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteTimesheetRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM timesheets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting timesheet entry: %w", err)
	}
	return nil
}

func finishTimesheet(t *domain.TimesheetEntry, activityID sql.NullString, dateStr, payTypeStr, createdAtStr string) (*domain.TimesheetEntry, error) {
	if activityID.Valid {
		t.ActivityID = activityID.String
	}
	t.PayType = domain.PayType(payTypeStr)

	var parseErr error
	t.Date, parseErr = time.Parse(dateLayout, dateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing date: %w", parseErr)
	}
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return t, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rcalloway/timebill/internal/db"
	"github.com/rcalloway/timebill/internal/domain"
)

// SQLitePayHistoryRepo implements PayHistoryRepo using a SQLite
// database. History rows are append-only.
type SQLitePayHistoryRepo struct {
	db db.DBTX
}

// NewSQLitePayHistoryRepo creates a new SQLitePayHistoryRepo.
func NewSQLitePayHistoryRepo(conn db.DBTX) *SQLitePayHistoryRepo {
	return &SQLitePayHistoryRepo{db: conn}
}

func (r *SQLitePayHistoryRepo) Append(ctx context.Context, h *domain.PayHistoryEntry) error {
	query := `INSERT INTO employee_pay_history (id, employee_id, regular_rate, overtime_rate, effective_date, change_kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	// Nanosecond precision on created_at keeps same-day entries ordered
	// even when they are appended within the same second.
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.EmployeeID,
		h.RegularRate,
		h.OvertimeRate,
		h.EffectiveDate.Format(dateLayout),
		string(h.Kind),
		h.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting pay history entry: %w", err)
	}
	return nil
}

func (r *SQLitePayHistoryRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.PayHistoryEntry, error) {
	query := `SELECT id, employee_id, regular_rate, overtime_rate, effective_date, change_kind, created_at
		FROM employee_pay_history WHERE employee_id = ?
		ORDER BY effective_date, created_at`
	rows, err := r.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing pay history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.PayHistoryEntry
	for rows.Next() {
		var h domain.PayHistoryEntry
		var effectiveStr, kindStr, createdAtStr string
		if err := rows.Scan(&h.ID, &h.EmployeeID, &h.RegularRate, &h.OvertimeRate, &effectiveStr, &kindStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning pay history row: %w", err)
		}
		h.Kind = domain.PayChangeKind(kindStr)
		h.EffectiveDate, err = time.Parse(dateLayout, effectiveStr)
		if err != nil {
			return nil, fmt.Errorf("parsing effective_date: %w", err)
		}
		h.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entries = append(entries, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pay history: %w", err)
	}
	return entries, nil
}

// ChangesInWindow pairs each rate update inside [start, end] with the
// rate that preceded it, for the rate-change report.
func (r *SQLitePayHistoryRepo) ChangesInWindow(ctx context.Context, start, end time.Time) ([]domain.PayRateChange, error) {
	query := `SELECT h.employee_id, e.first_name, e.last_name, e.ee_code,
			COALESCE((SELECT p.regular_rate FROM employee_pay_history p
				WHERE p.employee_id = h.employee_id
				  AND (p.effective_date < h.effective_date
				       OR (p.effective_date = h.effective_date AND p.created_at < h.created_at))
				ORDER BY p.effective_date DESC, p.created_at DESC LIMIT 1), 0),
			h.regular_rate,
			COALESCE((SELECT p.overtime_rate FROM employee_pay_history p
				WHERE p.employee_id = h.employee_id
				  AND (p.effective_date < h.effective_date
				       OR (p.effective_date = h.effective_date AND p.created_at < h.created_at))
				ORDER BY p.effective_date DESC, p.created_at DESC LIMIT 1), 0),
			h.overtime_rate,
			h.effective_date
		FROM employee_pay_history h
		JOIN employees e ON e.id = h.employee_id
		WHERE h.change_kind = 'update'
		  AND h.effective_date BETWEEN ? AND ?
		ORDER BY h.effective_date, e.last_name, e.first_name`
	rows, err := r.db.QueryContext(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("querying pay rate changes: %w", err)
	}
	defer rows.Close()

	var changes []domain.PayRateChange
	for rows.Next() {
		var c domain.PayRateChange
		var firstName, lastName, changedStr string
		if err := rows.Scan(&c.EmployeeID, &firstName, &lastName, &c.EECode,
			&c.OldRegularRate, &c.NewRegularRate,
			&c.OldOvertimeRate, &c.NewOvertimeRate,
			&changedStr); err != nil {
			return nil, fmt.Errorf("scanning pay rate change: %w", err)
		}
		c.EmployeeName = (&domain.Employee{FirstName: firstName, LastName: lastName}).FullName()
		c.ChangedAt, err = time.Parse(dateLayout, changedStr)
		if err != nil {
			return nil, fmt.Errorf("parsing change date: %w", err)
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pay rate changes: %w", err)
	}
	return changes, nil
}

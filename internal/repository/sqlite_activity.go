package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rcalloway/timebill/internal/db"
	"github.com/rcalloway/timebill/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	query := `INSERT INTO activities (id, job_id, activity_code, activity_description, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.JobID, a.Code, a.Description, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT id, job_id, activity_code, activity_description, created_at
		FROM activities WHERE id = ?`
	var a domain.Activity
	var createdAtStr string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.JobID, &a.Code, &a.Description, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("activity not found")
		}
		return nil, fmt.Errorf("scanning activity: %w", err)
	}
	a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &a, nil
}

func (r *SQLiteActivityRepo) ListByJob(ctx context.Context, jobID string) ([]*domain.Activity, error) {
	query := `SELECT id, job_id, activity_code, activity_description, created_at
		FROM activities WHERE job_id = ? ORDER BY activity_code`
	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var a domain.Activity
		var createdAtStr string
		if err := rows.Scan(&a.ID, &a.JobID, &a.Code, &a.Description, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		activities = append(activities, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return activities, nil
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return nil
}

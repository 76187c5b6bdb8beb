package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rcalloway/timebill/internal/db"
	"github.com/rcalloway/timebill/internal/domain"
)

// SQLiteJobRepo implements JobRepo using a SQLite database.
type SQLiteJobRepo struct {
	db db.DBTX
}

// NewSQLiteJobRepo creates a new SQLiteJobRepo.
func NewSQLiteJobRepo(conn db.DBTX) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: conn}
}

const jobColumns = `id, job_number, job_name, job_description, client_name, created_at, updated_at`

func (r *SQLiteJobRepo) Create(ctx context.Context, j *domain.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		j.ID,
		j.JobNumber,
		j.JobName,
		j.Description,
		j.ClientName,
		j.CreatedAt.Format(time.RFC3339),
		j.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`
	return r.scanJob(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteJobRepo) GetByNumber(ctx context.Context, jobNumber string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE UPPER(job_number) = UPPER(?)`
	return r.scanJob(r.db.QueryRowContext(ctx, query, jobNumber))
}

func (r *SQLiteJobRepo) List(ctx context.Context) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY job_number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		j, err := r.scanJobFromRows(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}
	return jobs, nil
}

func (r *SQLiteJobRepo) Update(ctx context.Context, j *domain.Job) error {
	query := `UPDATE jobs SET job_number = ?, job_name = ?, job_description = ?, client_name = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		j.JobNumber,
		j.JobName,
		j.Description,
		j.ClientName,
		j.UpdatedAt.Format(time.RFC3339),
		j.ID,
	)
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) scanJob(row *sql.Row) (*domain.Job, error) {
	var j domain.Job
	var createdAtStr, updatedAtStr string

	err := row.Scan(&j.ID, &j.JobNumber, &j.JobName, &j.Description, &j.ClientName, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("job not found")
		}
		return nil, fmt.Errorf("scanning job: %w", err)
	}
	return finishJob(&j, createdAtStr, updatedAtStr)
}

func (r *SQLiteJobRepo) scanJobFromRows(rows *sql.Rows) (*domain.Job, error) {
	var j domain.Job
	var createdAtStr, updatedAtStr string

	err := rows.Scan(&j.ID, &j.JobNumber, &j.JobName, &j.Description, &j.ClientName, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning job row: %w", err)
	}
	return finishJob(&j, createdAtStr, updatedAtStr)
}

func finishJob(j *domain.Job, createdAtStr, updatedAtStr string) (*domain.Job, error) {
	var parseErr error
	j.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	j.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return j, nil
}

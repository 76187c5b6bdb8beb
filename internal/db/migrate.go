package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id            TEXT PRIMARY KEY,
		ee_code       TEXT NOT NULL UNIQUE,
		first_name    TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL DEFAULT '',
		regular_rate  REAL NOT NULL DEFAULT 0 CHECK(regular_rate >= 0),
		overtime_rate REAL NOT NULL DEFAULT 0 CHECK(overtime_rate >= 0),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id              TEXT PRIMARY KEY,
		job_number      TEXT NOT NULL UNIQUE,
		job_name        TEXT NOT NULL,
		job_description TEXT NOT NULL DEFAULT '',
		client_name     TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id                   TEXT PRIMARY KEY,
		job_id               TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		activity_code        TEXT NOT NULL DEFAULT '',
		activity_description TEXT NOT NULL DEFAULT '',
		created_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_job ON activities(job_id)`,

	`CREATE TABLE IF NOT EXISTS timesheets (
		id          TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		job_id      TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		activity_id TEXT REFERENCES activities(id) ON DELETE SET NULL,
		date        TEXT NOT NULL,
		hours       REAL NOT NULL DEFAULT 0 CHECK(hours >= 0),
		pay_type    TEXT NOT NULL CHECK(pay_type IN ('Regular','Overtime')),
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_timesheets_employee ON timesheets(employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timesheets_job ON timesheets(job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timesheets_date ON timesheets(date)`,

	`CREATE TABLE IF NOT EXISTS invoices (
		id             TEXT PRIMARY KEY,
		job_id         TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		invoice_number TEXT NOT NULL UNIQUE,
		week_ending    TEXT NOT NULL,
		total_amount   REAL NOT NULL DEFAULT 0,
		invoice_date   TEXT NOT NULL,
		due_date       TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_invoices_job ON invoices(job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_week ON invoices(week_ending)`,

	`CREATE TABLE IF NOT EXISTS invoice_lines (
		id                   TEXT PRIMARY KEY,
		invoice_id           TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		employee_name        TEXT NOT NULL,
		activity_description TEXT NOT NULL DEFAULT '',
		regular_hours        REAL NOT NULL DEFAULT 0,
		overtime_hours       REAL NOT NULL DEFAULT 0,
		regular_rate         REAL NOT NULL DEFAULT 0,
		overtime_rate        REAL NOT NULL DEFAULT 0,
		total_amount         REAL NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_invoice_lines_invoice ON invoice_lines(invoice_id)`,

	`CREATE TABLE IF NOT EXISTS employee_pay_history (
		id             TEXT PRIMARY KEY,
		employee_id    TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		regular_rate   REAL NOT NULL DEFAULT 0,
		overtime_rate  REAL NOT NULL DEFAULT 0,
		effective_date TEXT NOT NULL,
		change_kind    TEXT NOT NULL DEFAULT 'update'
		               CHECK(change_kind IN ('initial','update')),
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_pay_history_employee ON employee_pay_history(employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pay_history_effective ON employee_pay_history(effective_date)`,

	// Invoice numbering seeds: one allocator row per numbering scope,
	// bumped atomically when a batch reserves numbers.
	`CREATE TABLE IF NOT EXISTS invoice_sequences (
		scope    TEXT PRIMARY KEY,
		next_num INTEGER NOT NULL CHECK(next_num > 0)
	)`,
}

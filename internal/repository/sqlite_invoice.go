package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rcalloway/timebill/internal/db"
	"github.com/rcalloway/timebill/internal/domain"
)

// SQLiteInvoiceRepo implements InvoiceRepo using a SQLite database.
type SQLiteInvoiceRepo struct {
	db db.DBTX
}

// NewSQLiteInvoiceRepo creates a new SQLiteInvoiceRepo.
func NewSQLiteInvoiceRepo(conn db.DBTX) *SQLiteInvoiceRepo {
	return &SQLiteInvoiceRepo{db: conn}
}

const invoiceColumns = `id, job_id, invoice_number, week_ending, total_amount, invoice_date, due_date, created_at, updated_at`

// Create inserts an invoice together with its flattened lines.
func (r *SQLiteInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice, lines []domain.InvoiceLine) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		inv.ID,
		inv.JobID,
		inv.InvoiceNumber,
		inv.WeekEnding.Format(dateLayout),
		inv.TotalAmount,
		inv.InvoiceDate.Format(dateLayout),
		nullableTimeToString(inv.DueDate, dateLayout),
		inv.CreatedAt.Format(time.RFC3339),
		inv.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting invoice: %w", err)
	}

	lineQuery := `INSERT INTO invoice_lines (id, invoice_id, employee_name, activity_description,
		regular_hours, overtime_hours, regular_rate, overtime_rate, total_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, l := range lines {
		if _, err := r.db.ExecContext(ctx, lineQuery,
			l.ID, inv.ID, l.EmployeeName, l.ActivityDescription,
			l.RegularHours, l.OvertimeHours, l.RegularRate, l.OvertimeRate, l.TotalAmount,
		); err != nil {
			return fmt.Errorf("inserting invoice line: %w", err)
		}
	}
	return nil
}

func (r *SQLiteInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ?`
	return r.scanInvoice(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteInvoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_number = ?`
	return r.scanInvoice(r.db.QueryRowContext(ctx, query, invoiceNumber))
}

func (r *SQLiteInvoiceRepo) List(ctx context.Context) ([]*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY invoice_date DESC, invoice_number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		inv, err := r.scanInvoiceFromRows(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}
	return invoices, nil
}

func (r *SQLiteInvoiceRepo) ListLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `SELECT id, invoice_id, employee_name, activity_description,
		regular_hours, overtime_hours, regular_rate, overtime_rate, total_amount
		FROM invoice_lines WHERE invoice_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.InvoiceLine
	for rows.Next() {
		var l domain.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.EmployeeName, &l.ActivityDescription,
			&l.RegularHours, &l.OvertimeHours, &l.RegularRate, &l.OvertimeRate, &l.TotalAmount); err != nil {
			return nil, fmt.Errorf("scanning invoice line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice lines: %w", err)
	}
	return lines, nil
}

// ListNumbersByBase returns every invoice number in a base number's
// revision family: the base itself plus any base-RevN variants.
func (r *SQLiteInvoiceRepo) ListNumbersByBase(ctx context.Context, base string) ([]string, error) {
	query := `SELECT invoice_number FROM invoices
		WHERE invoice_number = ? OR invoice_number LIKE ? || '-Rev%'
		ORDER BY invoice_number`
	rows, err := r.db.QueryContext(ctx, query, base, base)
	if err != nil {
		return nil, fmt.Errorf("listing invoice numbers for base %s: %w", base, err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning invoice number: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice numbers: %w", err)
	}
	return numbers, nil
}

func (r *SQLiteInvoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	query := `UPDATE invoices SET invoice_number = ?, week_ending = ?, total_amount = ?,
		invoice_date = ?, due_date = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		inv.InvoiceNumber,
		inv.WeekEnding.Format(dateLayout),
		inv.TotalAmount,
		inv.InvoiceDate.Format(dateLayout),
		nullableTimeToString(inv.DueDate, dateLayout),
		inv.UpdatedAt.Format(time.RFC3339),
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}
	return nil
}

func (r *SQLiteInvoiceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}
	return nil
}

// NextSeed reserves count invoice numbers for a scope and returns the
// first. The allocator row is seeded on first use; reservation is a
// single atomic UPDATE ... RETURNING so concurrent batches never
// overlap.
func (r *SQLiteInvoiceRepo) NextSeed(ctx context.Context, scope string, seed, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("reserving %d invoice numbers: count must not be negative", count)
	}
	seedQuery := `INSERT OR IGNORE INTO invoice_sequences (scope, next_num) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, seedQuery, scope, seed); err != nil {
		return 0, fmt.Errorf("seeding invoice sequence for %s: %w", scope, err)
	}

	var first int
	allocQuery := `UPDATE invoice_sequences
		SET next_num = next_num + ?
		WHERE scope = ?
		RETURNING next_num - ?`
	if err := r.db.QueryRowContext(ctx, allocQuery, count, scope, count).Scan(&first); err != nil {
		return 0, fmt.Errorf("allocating invoice numbers for %s: %w", scope, err)
	}
	return first, nil
}

func (r *SQLiteInvoiceRepo) scanInvoice(row *sql.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	var weekEndingStr, invoiceDateStr, createdAtStr, updatedAtStr string
	var dueDateStr sql.NullString

	err := row.Scan(
		&inv.ID, &inv.JobID, &inv.InvoiceNumber,
		&weekEndingStr, &inv.TotalAmount, &invoiceDateStr, &dueDateStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("invoice not found")
		}
		return nil, fmt.Errorf("scanning invoice: %w", err)
	}
	return finishInvoice(&inv, weekEndingStr, invoiceDateStr, dueDateStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteInvoiceRepo) scanInvoiceFromRows(rows *sql.Rows) (*domain.Invoice, error) {
	var inv domain.Invoice
	var weekEndingStr, invoiceDateStr, createdAtStr, updatedAtStr string
	var dueDateStr sql.NullString

	err := rows.Scan(
		&inv.ID, &inv.JobID, &inv.InvoiceNumber,
		&weekEndingStr, &inv.TotalAmount, &invoiceDateStr, &dueDateStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning invoice row: %w", err)
	}
	return finishInvoice(&inv, weekEndingStr, invoiceDateStr, dueDateStr, createdAtStr, updatedAtStr)
}

func finishInvoice(inv *domain.Invoice, weekEndingStr, invoiceDateStr string, dueDateStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.Invoice, error) {
	var parseErr error
	inv.WeekEnding, parseErr = time.Parse(dateLayout, weekEndingStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing week_ending: %w", parseErr)
	}
	inv.InvoiceDate, parseErr = time.Parse(dateLayout, invoiceDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing invoice_date: %w", parseErr)
	}
	inv.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	inv.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	inv.DueDate = parseNullableTime(dueDateStr, dateLayout)
	return inv, nil
}

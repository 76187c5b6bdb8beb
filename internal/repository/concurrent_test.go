package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rcalloway/timebill/internal/db"
	"github.com/rcalloway/timebill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// retryTx retries a transactional closure with backoff, absorbing the
// SQLITE_BUSY errors a single-writer database throws under contention.
func retryTx(fn func() error) error {
	const maxRetries = 10
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if attempt == maxRetries-1 {
			return err
		}
		time.Sleep(time.Millisecond * time.Duration(1<<attempt))
	}
	return nil
}

// TestConcurrentAccess_ReadDuringWrite verifies that listing employees
// does not block or see half-written rows while timesheet entries are
// being inserted. WAL mode allows concurrent readers with a single
// writer, which is the normal operating mode for this tool.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	employees := NewSQLiteEmployeeRepo(database)
	jobs := NewSQLiteJobRepo(database)
	timesheets := NewSQLiteTimesheetRepo(database)

	emp := testutil.NewTestEmployee("Jane Doe")
	require.NoError(t, employees.Create(ctx, emp))
	job := testutil.NewTestJob("Plant Upgrade")
	require.NoError(t, jobs.Create(ctx, job))

	var wg sync.WaitGroup

	// Writer goroutine: create 20 timesheet entries sequentially.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			entry := testutil.NewTestEntry(emp.ID, job.ID,
				time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i%7), 8)
			if err := retryTx(func() error { return timesheets.Create(ctx, entry) }); err != nil {
				t.Errorf("writer: create entry %d: %v", i, err)
				return
			}
		}
	}()

	// Reader goroutines: repeatedly list while writes happen.
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				entries, err := timesheets.ListByEmployee(ctx, emp.ID)
				if err != nil {
					t.Errorf("reader %d: list entries: %v", reader, err)
					return
				}
				for _, e := range entries {
					if e.ID == "" || e.EmployeeID == "" {
						t.Errorf("reader %d: got entry with empty ID", reader)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	entries, err := timesheets.ListByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, len(entries))
}

func TestConcurrentAccess_InvoiceSequence_NoOverlap(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	uow := db.NewSQLiteUnitOfWork(database)

	const workers = 40
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	seeds := make(chan int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := retryTx(func() error {
				return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
					txInvoices := NewSQLiteInvoiceRepo(tx)
					first, err := txInvoices.NextSeed(ctx, "default", 100, 2)
					if err != nil {
						return err
					}
					seeds <- first
					return nil
				})
			})
			if err != nil {
				errCh <- err
			}
		}()
	}

	wg.Wait()
	close(errCh)
	close(seeds)
	for err := range errCh {
		require.NoError(t, err)
	}

	// Each worker reserved a block of 2; no two blocks may overlap.
	seen := make(map[int]bool)
	for first := range seeds {
		for _, n := range []int{first, first + 1} {
			assert.Falsef(t, seen[n], "invoice number %d reserved twice", n)
			seen[n] = true
		}
	}
	assert.Equal(t, workers*2, len(seen))
}

func TestConcurrentAccess_RevisionCreation_Serialized(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	jobs := NewSQLiteJobRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	job := testutil.NewTestJob("Plant Upgrade")
	require.NoError(t, jobs.Create(ctx, job))

	invoices := NewSQLiteInvoiceRepo(database)
	require.NoError(t, invoices.Create(ctx, newTestInvoice(job.ID, "500"), nil))

	// Many workers revise the same base concurrently. Reading the max
	// revision and inserting inside one transaction plus the UNIQUE
	// constraint on invoice_number keeps numbers collision-free.
	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := retryTx(func() error {
				return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
					txInvoices := NewSQLiteInvoiceRepo(tx)
					existing, err := txInvoices.ListNumbersByBase(ctx, "500")
					if err != nil {
						return err
					}
					maxRev := 0
					for _, n := range existing {
						var rev int
						if _, err := fmt.Sscanf(n, "500-Rev%d", &rev); err == nil && rev > maxRev {
							maxRev = rev
						}
					}
					next := fmt.Sprintf("500-Rev%d", maxRev+1)
					return txInvoices.Create(ctx, newTestInvoice(job.ID, next), nil)
				})
			})
			if err != nil {
				t.Errorf("worker %d: revise: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	numbers, err := invoices.ListNumbersByBase(ctx, "500")
	require.NoError(t, err)
	assert.Len(t, numbers, workers+1, "base plus one revision per worker")
}

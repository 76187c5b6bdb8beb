package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/rcalloway/timebill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(jobID, number string) *domain.Invoice {
	now := time.Now().UTC()
	return &domain.Invoice{
		ID:            uuid.New().String(),
		JobID:         jobID,
		InvoiceNumber: number,
		WeekEnding:    time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
		TotalAmount:   260,
		InvoiceDate:   time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestInvoiceRepo_CreateWithLines(t *testing.T) {
	database := testutil.NewTestDB(t)
	jobs := NewSQLiteJobRepo(database)
	repo := NewSQLiteInvoiceRepo(database)
	ctx := context.Background()

	job := testutil.NewTestJob("Plant Upgrade")
	require.NoError(t, jobs.Create(ctx, job))

	inv := newTestInvoice(job.ID, "500")
	lines := []domain.InvoiceLine{
		{ID: uuid.New().String(), EmployeeName: "Jane Doe", ActivityDescription: "Framing",
			RegularHours: 10, OvertimeHours: 2, RegularRate: 20, OvertimeRate: 30, TotalAmount: 260},
	}
	require.NoError(t, repo.Create(ctx, inv, lines))

	got, err := repo.GetByNumber(ctx, "500")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)
	assert.Equal(t, 260.0, got.TotalAmount)
	assert.Equal(t, "2026-08-23", got.WeekEnding.Format("2006-01-02"))

	gotLines, err := repo.ListLines(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, gotLines, 1)
	assert.Equal(t, "Jane Doe", gotLines[0].EmployeeName)
	assert.Equal(t, inv.ID, gotLines[0].InvoiceID)
}

func TestInvoiceRepo_ListNumbersByBase(t *testing.T) {
	database := testutil.NewTestDB(t)
	jobs := NewSQLiteJobRepo(database)
	repo := NewSQLiteInvoiceRepo(database)
	ctx := context.Background()

	job := testutil.NewTestJob("Plant Upgrade")
	require.NoError(t, jobs.Create(ctx, job))

	for _, num := range []string{"500", "500-Rev1", "500-Rev2", "5001", "501"} {
		require.NoError(t, repo.Create(ctx, newTestInvoice(job.ID, num), nil))
	}

	numbers, err := repo.ListNumbersByBase(ctx, "500")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"500", "500-Rev1", "500-Rev2"}, numbers)
}

func TestInvoiceRepo_UpdateAndDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	jobs := NewSQLiteJobRepo(database)
	repo := NewSQLiteInvoiceRepo(database)
	ctx := context.Background()

	job := testutil.NewTestJob("Plant Upgrade")
	require.NoError(t, jobs.Create(ctx, job))

	inv := newTestInvoice(job.ID, "600")
	require.NoError(t, repo.Create(ctx, inv, nil))

	due := time.Date(2026, 9, 23, 0, 0, 0, 0, time.UTC)
	inv.TotalAmount = 999.99
	inv.DueDate = &due
	require.NoError(t, repo.Update(ctx, inv))

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 999.99, got.TotalAmount)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2026-09-23", got.DueDate.Format("2006-01-02"))

	require.NoError(t, repo.Delete(ctx, inv.ID))
	_, err = repo.GetByID(ctx, inv.ID)
	assert.Error(t, err)
}

func TestInvoiceRepo_NextSeed_SeedsOnFirstUse(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteInvoiceRepo(database)
	ctx := context.Background()

	first, err := repo.NextSeed(ctx, "default", 100, 3)
	require.NoError(t, err)
	assert.Equal(t, 100, first)

	// A later batch continues where the first left off; its own seed is
	// ignored because the scope already exists.
	second, err := repo.NextSeed(ctx, "default", 100, 2)
	require.NoError(t, err)
	assert.Equal(t, 103, second)
}

func TestInvoiceRepo_NextSeed_ScopesAreIndependent(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteInvoiceRepo(database)
	ctx := context.Background()

	a, err := repo.NextSeed(ctx, "client-a", 100, 1)
	require.NoError(t, err)
	b, err := repo.NextSeed(ctx, "client-b", 900, 1)
	require.NoError(t, err)

	assert.Equal(t, 100, a)
	assert.Equal(t, 900, b)
}

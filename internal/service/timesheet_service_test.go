package service

import (
	"context"
	"testing"
	"time"

	"github.com/rcalloway/timebill/internal/domain"
	"github.com/rcalloway/timebill/internal/repository"
	"github.com/rcalloway/timebill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimesheetService_Log_DefaultsAndValidates(t *testing.T) {
	database := testutil.NewTestDB(t)
	employees := repository.NewSQLiteEmployeeRepo(database)
	jobs := repository.NewSQLiteJobRepo(database)
	svc := NewTimesheetService(repository.NewSQLiteTimesheetRepo(database))
	ctx := context.Background()

	emp := testutil.NewTestEmployee("Jane Doe")
	require.NoError(t, employees.Create(ctx, emp))
	job := testutil.NewTestJob("Plant Upgrade")
	require.NoError(t, jobs.Create(ctx, job))

	entry := &domain.TimesheetEntry{
		EmployeeID: emp.ID,
		JobID:      job.ID,
		Date:       time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Hours:      8,
	}
	require.NoError(t, svc.Log(ctx, entry))
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, domain.PayRegular, entry.PayType)

	err := svc.Log(ctx, &domain.TimesheetEntry{EmployeeID: emp.ID, JobID: job.ID, Hours: 8})
	assert.ErrorContains(t, err, "date is required")

	err = svc.Log(ctx, &domain.TimesheetEntry{
		EmployeeID: emp.ID, JobID: job.ID,
		Date: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), Hours: -1,
	})
	assert.ErrorContains(t, err, "must not be negative")
}

func TestTimesheetService_WeekDetails_RateFollowsPayType(t *testing.T) {
	database := testutil.NewTestDB(t)
	employees := repository.NewSQLiteEmployeeRepo(database)
	jobs := repository.NewSQLiteJobRepo(database)
	activities := repository.NewSQLiteActivityRepo(database)
	timesheets := repository.NewSQLiteTimesheetRepo(database)
	svc := NewTimesheetService(timesheets)
	ctx := context.Background()

	emp := testutil.NewTestEmployee("Jane Doe", testutil.WithRates(20, 30))
	require.NoError(t, employees.Create(ctx, emp))
	job := testutil.NewTestJob("Plant Upgrade", testutil.WithJobNumber("J-100"))
	require.NoError(t, jobs.Create(ctx, job))
	act := testutil.NewTestActivity(job.ID, "010", "Framing")
	require.NoError(t, activities.Create(ctx, act))

	weekEnding := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	require.NoError(t, timesheets.Create(ctx, testutil.NewTestEntry(emp.ID, job.ID, weekEnding.AddDate(0, 0, -2), 8,
		testutil.WithActivityID(act.ID))))
	require.NoError(t, timesheets.Create(ctx, testutil.NewTestEntry(emp.ID, job.ID, weekEnding.AddDate(0, 0, -1), 2,
		testutil.WithPayType(domain.PayOvertime))))

	rows, err := svc.WeekDetails(ctx, weekEnding)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.PayRegular, rows[0].PayType)
	assert.Equal(t, 20.0, rows[0].BurdenedRate)
	assert.Equal(t, "010", rows[0].ActivityCode)
	assert.Equal(t, "J-100", rows[0].JobNumber)
	assert.Equal(t, "2026-08-23", rows[0].WeekEnding)

	assert.Equal(t, domain.PayOvertime, rows[1].PayType)
	assert.Equal(t, 30.0, rows[1].BurdenedRate)
	assert.Empty(t, rows[1].ActivityCode)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rcalloway/timebill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEmployeeRepo(database)
	ctx := context.Background()

	e := testutil.NewTestEmployee("Jane Doe", testutil.WithRates(22.50, 33.75))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "Doe", got.LastName)
	assert.Equal(t, 22.50, got.RegularRate)
	assert.Equal(t, 33.75, got.OvertimeRate)
	assert.Equal(t, "Jane Doe", got.FullName())
}

func TestEmployeeRepo_GetByCode_CaseInsensitive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEmployeeRepo(database)
	ctx := context.Background()

	e := testutil.NewTestEmployee("Jane Doe", testutil.WithEECode("JD100"))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByCode(ctx, "jd100")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
}

func TestEmployeeRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEmployeeRepo(database)

	_, err := repo.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEmployeeRepo_ListOrderedByName(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEmployeeRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestEmployee("Zoe Young")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEmployee("Adam Abbott")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Abbott", list[0].LastName)
	assert.Equal(t, "Young", list[1].LastName)
}

func TestEmployeeRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEmployeeRepo(database)
	ctx := context.Background()

	e := testutil.NewTestEmployee("Jane Doe", testutil.WithRates(20, 30))
	require.NoError(t, repo.Create(ctx, e))

	e.RegularRate = 25
	e.OvertimeRate = 37.50
	e.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, got.RegularRate)
	assert.Equal(t, 37.50, got.OvertimeRate)
}

func TestEmployeeRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEmployeeRepo(database)
	ctx := context.Background()

	e := testutil.NewTestEmployee("Jane Doe")
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.Delete(ctx, e.ID))

	_, err := repo.GetByID(ctx, e.ID)
	assert.Error(t, err)
}

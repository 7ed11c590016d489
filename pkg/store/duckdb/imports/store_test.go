package imports

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/boxoffice-atlas/pkg/adapters"
	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store *defaultStore
	clock time.Time
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	f := &fixture{
		db:    db,
		store: s.(*defaultStore),
		clock: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.store.now = func() time.Time { return f.clock }
	return f
}

func TestNewStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupFixture(t)
		assert.NotNil(t, f.store)
	})

	t.Run("nil db", func(t *testing.T) {
		s, err := NewStore(nil)
		assert.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestStore_CreateAndFinishRun(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	run, err := f.store.CreateRun(ctx, "data/movies.csv")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, string(domain.ImportStatusPending), run.Status)
	assert.Equal(t, f.clock, run.CreatedAt)

	pending, err := f.store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.ImportStatusPending, adapters.MapStoreImportRunToDomain(pending[0]).Status)

	f.clock = f.clock.Add(time.Minute)
	require.NoError(t, f.store.FinishRun(ctx, run.ID, string(domain.ImportStatusFinished), 42, nil))

	runs, err := f.store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, string(domain.ImportStatusFinished), runs[0].Status)
	assert.Equal(t, int64(42), runs[0].RecordsCount)
	assert.Nil(t, runs[0].Error)
	assert.Equal(t, f.clock.Unix(), runs[0].UpdatedAt.Unix())
}

func TestStore_FinishRunWithError(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	run, err := f.store.CreateRun(ctx, "s3://bucket/movies.csv")
	require.NoError(t, err)

	msg := "dataset parse failure: line 3"
	require.NoError(t, f.store.FinishRun(ctx, run.ID, string(domain.ImportStatusFailed), 0, &msg))

	runs, err := f.store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.NotNil(t, runs[0].Error)
	assert.Equal(t, msg, *runs[0].Error)
}

func TestStore_FinishUnknownRun(t *testing.T) {
	f := setupFixture(t)

	err := f.store.FinishRun(context.Background(), "missing", "finished", 1, nil)
	assert.ErrorContains(t, err, "import run missing not found")
}

func TestStore_ListRunsNewestFirst(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	first, err := f.store.CreateRun(ctx, "first.csv")
	require.NoError(t, err)
	f.clock = f.clock.Add(time.Hour)
	second, err := f.store.CreateRun(ctx, "second.csv")
	require.NoError(t, err)

	runs, err := f.store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)

	runs, err = f.store.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, second.ID, runs[0].ID)
}

func TestStore_ListRunsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, source, status").WillReturnError(errors.New("boom"))

	_, err = s.ListRuns(context.Background(), 0)
	assert.ErrorContains(t, err, "query import runs")
	assert.NoError(t, mock.ExpectationsWereMet())
}

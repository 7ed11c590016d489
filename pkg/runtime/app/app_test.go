package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/services/config"
	"github.com/de-tools/boxoffice-atlas/pkg/services/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) Load(context.Context) ([]domain.Record, error) {
	return nil, dataset.ErrMissingFile
}

type trackingCloser struct {
	closed bool
}

func (c *trackingCloser) Close() error {
	c.closed = true
	return nil
}

func testConfig(t *testing.T, path string) *config.Config {
	t.Helper()
	t.Setenv("BOXOFFICE_DATASET_PATH", path)
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	require.NoError(t, os.WriteFile(path, []byte("year,genre,gross\n2001,Action,100\n2003,Drama,40\n"), 0o600))

	a, err := New(context.Background(), testConfig(t, path))
	require.NoError(t, err)
	defer func() { assert.NoError(t, a.Close()) }()

	criteria, err := a.Explorer.DefaultCriteria(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Drama"}, criteria.Genres)
	assert.Equal(t, domain.YearRange{Min: 2001, Max: 2003}, criteria.Years)
}

func TestNew_MissingDataset(t *testing.T) {
	_, err := New(context.Background(), testConfig(t, filepath.Join(t.TempDir(), "missing.csv")))
	assert.True(t, errors.Is(err, dataset.ErrMissingFile))
}

func TestNewWithSource_ClosesOnFailure(t *testing.T) {
	closer := &trackingCloser{}

	_, err := NewWithSource(context.Background(), testConfig(t, "unused.csv"), failingSource{}, closer)

	assert.ErrorIs(t, err, dataset.ErrMissingFile)
	assert.True(t, closer.closed)
}

func TestDefaults(t *testing.T) {
	cfg := testConfig(t, "unused.csv")

	defaults := Defaults(cfg)

	assert.Equal(t, config.DefaultGenres, defaults.Genres)
	assert.Equal(t, domain.YearRange{Min: 2000, Max: 2016}, defaults.Years)
}

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/services/revenue"
	"github.com/rs/zerolog"
)

var ErrInvalidRange = errors.New("invalid year range")

// Dataset is the read-only, process-wide dataset (see dataset.Cache).
type Dataset interface {
	Records(ctx context.Context) ([]domain.Record, error)
	Summary(ctx context.Context) (domain.DatasetSummary, error)
}

// Explorer answers the dashboard's questions. Every call is independent: the
// selection travels with the request and nothing is remembered between calls.
type Explorer interface {
	Summary(ctx context.Context) (domain.DatasetSummary, error)
	DefaultCriteria(ctx context.Context) (domain.FilterCriteria, error)
	View(ctx context.Context, criteria domain.FilterCriteria) (*domain.View, error)
}

type Defaults struct {
	Genres []string
	Years  domain.YearRange
}

type explorer struct {
	dataset  Dataset
	defaults Defaults
}

func NewExplorer(dataset Dataset, defaults Defaults) Explorer {
	return &explorer{
		dataset:  dataset,
		defaults: defaults,
	}
}

func (e *explorer) Summary(ctx context.Context) (domain.DatasetSummary, error) {
	return e.dataset.Summary(ctx)
}

// DefaultCriteria keeps the configured genres that exist in the dataset and clamps
// the configured years to the dataset's own bounds.
func (e *explorer) DefaultCriteria(ctx context.Context) (domain.FilterCriteria, error) {
	summary, err := e.dataset.Summary(ctx)
	if err != nil {
		return domain.FilterCriteria{}, err
	}

	genres := make([]string, 0, len(e.defaults.Genres))
	for _, g := range e.defaults.Genres {
		if slices.Contains(summary.Genres, g) {
			genres = append(genres, g)
		}
	}

	years := e.defaults.Years
	if summary.RecordsCount > 0 {
		years = years.Clamp(summary.Years)
	}
	return domain.FilterCriteria{Genres: genres, Years: years}, nil
}

func (e *explorer) View(ctx context.Context, criteria domain.FilterCriteria) (*domain.View, error) {
	if !criteria.Years.Valid() {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidRange, criteria.Years.Min, criteria.Years.Max)
	}

	records, err := e.dataset.Records(ctx)
	if err != nil {
		return nil, err
	}

	view := revenue.Build(records, criteria)
	zerolog.Ctx(ctx).Debug().
		Strs("genres", criteria.Genres).
		Int("from", criteria.Years.Min).
		Int("to", criteria.Years.Max).
		Int("rows", len(view.Grid.Rows)).
		Msg("view computed")
	return &view, nil
}

package app

import (
	"context"
	"fmt"
	"io"

	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/services/config"
	"github.com/de-tools/boxoffice-atlas/pkg/services/dashboard"
	"github.com/de-tools/boxoffice-atlas/pkg/services/dataset"
	"github.com/rs/zerolog"
)

// App wires the dataset and the explorer shared by the web server and the CLI.
type App struct {
	Config   *config.Config
	Dataset  *dataset.Cache
	Explorer dashboard.Explorer

	closer io.Closer
}

// New opens the configured dataset and loads it. A dataset that cannot be
// loaded is an error; nothing is served from a partial load.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	source, closer, err := dataset.NewSource(ctx, SourceSettings(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	return NewWithSource(ctx, cfg, source, closer)
}

func NewWithSource(ctx context.Context, cfg *config.Config, source dataset.Source, closer io.Closer) (*App, error) {
	cache := dataset.NewCache(source)
	if _, err := cache.Records(ctx); err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", cfg.Dataset.Source).
		Str("path", cfg.Dataset.Path).
		Msg("dataset ready")

	return &App{
		Config:   cfg,
		Dataset:  cache,
		Explorer: dashboard.NewExplorer(cache, Defaults(cfg)),
		closer:   closer,
	}, nil
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func SourceSettings(cfg *config.Config) dataset.Settings {
	return dataset.Settings{
		Kind:       cfg.Dataset.Source,
		Path:       cfg.Dataset.Path,
		DuckDBPath: cfg.Dataset.DuckDBPath,
	}
}

func Defaults(cfg *config.Config) dashboard.Defaults {
	return dashboard.Defaults{
		Genres: cfg.Filters.Genres,
		Years:  domain.YearRange{Min: cfg.Filters.From, Max: cfg.Filters.To},
	}
}

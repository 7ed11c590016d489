package commands

import (
	"context"
	"slices"

	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/runtime/app"
	"github.com/de-tools/boxoffice-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

// Opener loads the configured dataset. Commands call it from RunE so that
// persistent flags such as --config are already parsed.
type Opener func(ctx context.Context) (*app.App, error)

// ConfigLoader returns the configuration the root command loaded.
type ConfigLoader func() *config.Config

type criteriaFlags struct {
	genres []string
	from   int
	to     int
}

func (f *criteriaFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.genres, "genre", nil, "Genre to include (repeatable; default from config)")
	cmd.Flags().IntVar(&f.from, "from", 0, "First year of the range (default from config)")
	cmd.Flags().IntVar(&f.to, "to", 0, "Last year of the range (default from config)")
}

// resolve starts from the explorer's defaults and applies the flags the user set.
// An explicitly empty --genre= selects no genres.
func (f *criteriaFlags) resolve(ctx context.Context, cmd *cobra.Command, a *app.App) (domain.FilterCriteria, error) {
	criteria, err := a.Explorer.DefaultCriteria(ctx)
	if err != nil {
		return domain.FilterCriteria{}, err
	}

	if cmd.Flags().Changed("genre") {
		criteria.Genres = make([]string, 0, len(f.genres))
		for _, g := range f.genres {
			if g != "" && !slices.Contains(criteria.Genres, g) {
				criteria.Genres = append(criteria.Genres, g)
			}
		}
	}
	if cmd.Flags().Changed("from") {
		criteria.Years.Min = f.from
	}
	if cmd.Flags().Changed("to") {
		criteria.Years.Max = f.to
	}
	return criteria, nil
}

func withApp(ctx context.Context, open Opener, fn func(a *app.App) error) error {
	a, err := open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

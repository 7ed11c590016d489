package dataset

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Cache loads its Source on first use and keeps the result for the process lifetime.
// A failed load is remembered too; callers treat it as fatal.
type Cache struct {
	source Source

	once    sync.Once
	records []domain.Record
	summary domain.DatasetSummary
	err     error
}

func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

func (c *Cache) load(ctx context.Context) {
	c.once.Do(func() {
		records, err := c.source.Load(ctx)
		if err != nil {
			c.err = err
			return
		}
		c.records = records
		c.summary = Summarize(records)
		zerolog.Ctx(ctx).Info().
			Int("records", len(records)).
			Int("genres", len(c.summary.Genres)).
			Int("from", c.summary.Years.Min).
			Int("to", c.summary.Years.Max).
			Msg("dataset loaded")
	})
}

// Records returns the shared dataset. The slice must not be modified.
func (c *Cache) Records(ctx context.Context) ([]domain.Record, error) {
	c.load(ctx)
	return c.records, c.err
}

func (c *Cache) Summary(ctx context.Context) (domain.DatasetSummary, error) {
	c.load(ctx)
	return c.summary, c.err
}

// Summarize lists distinct genres (sorted) and the min/max year of records.
func Summarize(records []domain.Record) domain.DatasetSummary {
	summary := domain.DatasetSummary{
		Genres:       []string{},
		RecordsCount: len(records),
	}
	if len(records) == 0 {
		return summary
	}

	genres := map[string]struct{}{}
	summary.Years = domain.YearRange{Min: records[0].Year, Max: records[0].Year}
	for _, r := range records {
		genres[r.Genre] = struct{}{}
		summary.Years.Min = min(summary.Years.Min, r.Year)
		summary.Years.Max = max(summary.Years.Max, r.Year)
	}
	summary.Genres = slices.Sorted(maps.Keys(genres))
	return summary
}

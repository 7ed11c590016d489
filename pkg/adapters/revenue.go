package adapters

import (
	"maps"

	"github.com/de-tools/boxoffice-atlas/pkg/models/api"
	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/models/store"
)

func MapStoreRevenueRowsToDomain(rows []store.RevenueRow) []domain.Record {
	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.Record{
			Year:  row.Year,
			Genre: row.Genre,
			Gross: row.Gross,
		})
	}
	return records
}

func MapDomainRecordsToStore(records []domain.Record) []store.RevenueRow {
	rows := make([]store.RevenueRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, store.RevenueRow{
			Year:  r.Year,
			Genre: r.Genre,
			Gross: r.Gross,
		})
	}
	return rows
}

func MapDomainSummaryToAPI(summary domain.DatasetSummary) api.Summary {
	return api.Summary{
		Genres:       nonNil(summary.Genres),
		Years:        api.YearRange{From: summary.Years.Min, To: summary.Years.Max},
		RecordsCount: summary.RecordsCount,
	}
}

func MapDomainViewToAPI(view domain.View) api.RevenueView {
	rows := make([]api.PivotRow, 0, len(view.Grid.Rows))
	for _, row := range view.Grid.Rows {
		rows = append(rows, api.PivotRow{Year: row.Year, Gross: maps.Clone(row.Cells)})
	}

	series := make([]api.SeriesPoint, 0, len(view.Series))
	for _, p := range view.Series {
		series = append(series, api.SeriesPoint{Year: p.Year, Genre: p.Genre, Gross: p.Gross})
	}

	totals := make([]api.GenreTotal, 0, len(view.Totals))
	for _, t := range view.Totals {
		totals = append(totals, api.GenreTotal{Genre: t.Genre, Gross: t.Gross, Percentage: t.Percentage})
	}

	return api.RevenueView{
		Criteria: api.Criteria{
			Genres: nonNil(view.Criteria.Genres),
			Years:  api.YearRange{From: view.Criteria.Years.Min, To: view.Criteria.Years.Max},
		},
		Genres:     nonNil(view.Grid.Genres),
		Rows:       rows,
		Series:     series,
		Totals:     totals,
		TotalGross: view.TotalGross,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

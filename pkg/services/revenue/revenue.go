package revenue

import (
	"cmp"
	"maps"
	"slices"

	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Filter keeps the records whose genre is selected and whose year lies in the
// inclusive range. Input order is preserved.
func Filter(records []domain.Record, criteria domain.FilterCriteria) []domain.Record {
	selected := make(map[string]struct{}, len(criteria.Genres))
	for _, g := range criteria.Genres {
		selected[g] = struct{}{}
	}

	filtered := make([]domain.Record, 0)
	for _, r := range records {
		if _, ok := selected[r.Genre]; !ok {
			continue
		}
		if !criteria.Years.Contains(r.Year) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// Pivot groups records by (year, genre) and sums gross. Every row carries a cell
// for every genre column, 0 when the combination is absent.
func Pivot(records []domain.Record) domain.PivotGrid {
	sums := make(map[int]map[string]decimal.Decimal)
	genreSet := make(map[string]struct{})

	for _, r := range records {
		row, ok := sums[r.Year]
		if !ok {
			row = make(map[string]decimal.Decimal)
			sums[r.Year] = row
		}
		row[r.Genre] = row[r.Genre].Add(decimal.NewFromFloat(r.Gross))
		genreSet[r.Genre] = struct{}{}
	}

	genres := slices.Sorted(maps.Keys(genreSet))
	years := slices.SortedFunc(maps.Keys(sums), func(a, b int) int { return cmp.Compare(b, a) })

	grid := domain.PivotGrid{
		Genres: genres,
		Rows:   make([]domain.PivotRow, 0, len(years)),
	}
	for _, year := range years {
		cells := make(map[string]float64, len(genres))
		for _, g := range genres {
			cells[g] = sums[year][g].InexactFloat64()
		}
		grid.Rows = append(grid.Rows, domain.PivotRow{Year: year, Cells: cells})
	}
	return grid
}

// ToLongForm melts the grid back into one row per cell, ordered by year ascending
// and then by the grid's genre columns.
func ToLongForm(grid domain.PivotGrid) []domain.LongFormRow {
	rows := make([]domain.LongFormRow, 0, len(grid.Rows)*len(grid.Genres))
	for i := len(grid.Rows) - 1; i >= 0; i-- {
		row := grid.Rows[i]
		for _, g := range grid.Genres {
			rows = append(rows, domain.LongFormRow{
				Year:  row.Year,
				Genre: g,
				Gross: row.Cells[g],
			})
		}
	}
	return rows
}

// LongFormRecords converts long-form rows to records so they can be pivoted again.
func LongFormRecords(rows []domain.LongFormRow) []domain.Record {
	records := make([]domain.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, domain.Record{Year: r.Year, Genre: r.Genre, Gross: r.Gross})
	}
	return records
}

// GenreTotals sums gross per genre and computes each genre's share of the total.
// When the total is zero every share is reported as 0.
func GenreTotals(records []domain.Record) []domain.GenreTotal {
	sums := make(map[string]decimal.Decimal)
	for _, r := range records {
		sums[r.Genre] = sums[r.Genre].Add(decimal.NewFromFloat(r.Gross))
	}

	total := decimal.Zero
	for _, s := range sums {
		total = total.Add(s)
	}

	totals := make([]domain.GenreTotal, 0, len(sums))
	for _, genre := range slices.Sorted(maps.Keys(sums)) {
		gross := sums[genre]
		pct := decimal.Zero
		if !total.IsZero() {
			pct = gross.Mul(hundred).DivRound(total, 12)
		}
		totals = append(totals, domain.GenreTotal{
			Genre:      genre,
			Gross:      gross.InexactFloat64(),
			Percentage: pct.InexactFloat64(),
		})
	}
	return totals
}

// Build runs the whole pipeline for one selection.
func Build(records []domain.Record, criteria domain.FilterCriteria) domain.View {
	filtered := Filter(records, criteria)
	grid := Pivot(filtered)
	totals := GenreTotals(filtered)

	sum := decimal.Zero
	for _, r := range filtered {
		sum = sum.Add(decimal.NewFromFloat(r.Gross))
	}

	return domain.View{
		Criteria:   criteria,
		Grid:       grid,
		Series:     ToLongForm(grid),
		Totals:     totals,
		TotalGross: sum.InexactFloat64(),
	}
}

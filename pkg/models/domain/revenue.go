package domain

import "slices"

// Record is one pre-aggregated row of the dataset: gross revenue of a genre in a year.
type Record struct {
	Year  int
	Genre string
	Gross float64 // USD
}

// YearRange is an inclusive [Min, Max] interval of years.
type YearRange struct {
	Min int
	Max int
}

func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

func (r YearRange) Valid() bool {
	return r.Min <= r.Max
}

// Clamp narrows r to bounds. A range that falls completely outside bounds
// collapses onto the nearest bound.
func (r YearRange) Clamp(bounds YearRange) YearRange {
	out := r
	if out.Min < bounds.Min {
		out.Min = bounds.Min
	}
	if out.Max > bounds.Max {
		out.Max = bounds.Max
	}
	if out.Min > bounds.Max {
		out.Min = bounds.Max
	}
	if out.Max < bounds.Min {
		out.Max = bounds.Min
	}
	return out
}

type FilterCriteria struct {
	Genres []string
	Years  YearRange
}

func (c FilterCriteria) HasGenre(genre string) bool {
	return slices.Contains(c.Genres, genre)
}

// PivotGrid is the year x genre revenue table. Rows are ordered by year descending,
// Genres (the columns) ascending.
type PivotGrid struct {
	Genres []string
	Rows   []PivotRow
}

type PivotRow struct {
	Year  int
	Cells map[string]float64
}

// Cell returns the summed gross for (year, genre), 0 when absent.
func (g PivotGrid) Cell(year int, genre string) float64 {
	for _, row := range g.Rows {
		if row.Year == year {
			return row.Cells[genre]
		}
	}
	return 0
}

func (g PivotGrid) Empty() bool {
	return len(g.Rows) == 0
}

type LongFormRow struct {
	Year  int
	Genre string
	Gross float64
}

type GenreTotal struct {
	Genre      string
	Gross      float64
	Percentage float64 // share of the filtered total, 0..100
}

// View bundles every shape derived from one filter selection.
type View struct {
	Criteria   FilterCriteria
	Grid       PivotGrid
	Series     []LongFormRow
	Totals     []GenreTotal
	TotalGross float64
}

type DatasetSummary struct {
	Genres       []string
	Years        YearRange
	RecordsCount int
}

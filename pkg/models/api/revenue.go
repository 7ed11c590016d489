package api

type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type Summary struct {
	Genres       []string  `json:"genres"`
	Years        YearRange `json:"years"`
	RecordsCount int       `json:"records_count"`
}

type Criteria struct {
	Genres []string  `json:"genres"`
	Years  YearRange `json:"years"`
}

type PivotRow struct {
	Year  int                `json:"year"`
	Gross map[string]float64 `json:"gross"`
}

type SeriesPoint struct {
	Year  int     `json:"year"`
	Genre string  `json:"genre"`
	Gross float64 `json:"gross"`
}

type GenreTotal struct {
	Genre      string  `json:"genre"`
	Gross      float64 `json:"gross"`
	Percentage float64 `json:"percentage"`
}

type RevenueView struct {
	Criteria   Criteria      `json:"criteria"`
	Genres     []string      `json:"genres"`
	Rows       []PivotRow    `json:"rows"`
	Series     []SeriesPoint `json:"series"`
	Totals     []GenreTotal  `json:"totals"`
	TotalGross float64       `json:"total_gross"`
}

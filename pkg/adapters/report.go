package adapters

import (
	"fmt"

	"github.com/de-tools/boxoffice-atlas/pkg/format"
	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
)

func MapDomainViewToReport(view domain.View) *domain.Report {
	columns := append([]string{"Year"}, view.Grid.Genres...)
	rows := make([][]string, 0, len(view.Grid.Rows))
	for _, row := range view.Grid.Rows {
		cells := []string{format.Year(row.Year)}
		for _, g := range view.Grid.Genres {
			cells = append(cells, format.Amount(row.Cells[g]))
		}
		rows = append(rows, cells)
	}

	details := make([]domain.ReportDetail, 0, len(view.Totals))
	for _, t := range view.Totals {
		details = append(details, domain.ReportDetail{
			Name:        t.Genre,
			Value:       format.Currency(t.Gross),
			Unit:        format.Percent(t.Percentage, 1) + "%",
			Description: fmt.Sprintf("%s%% of the selected revenue", format.Percent(t.Percentage, 2)),
		})
	}

	byYear := domain.ReportSection{
		Title: "Revenue by year",
		Summary: map[string]interface{}{
			"Years":  fmt.Sprintf("%d-%d", view.Criteria.Years.Min, view.Criteria.Years.Max),
			"Genres": len(view.Grid.Genres),
		},
		Table: &domain.ReportTable{Columns: columns, Rows: rows},
	}
	byGenre := domain.ReportSection{
		Title:   "Total revenue by genre",
		Summary: map[string]interface{}{"Total": format.Currency(view.TotalGross)},
		Details: details,
	}

	return &domain.Report{
		Title:       "Gross revenue by genre",
		Years:       view.Criteria.Years,
		Genres:      view.Criteria.Genres,
		Sections:    []domain.ReportSection{byYear, byGenre},
		TotalAmount: view.TotalGross,
		Currency:    "USD",
	}
}

package export

import (
	"fmt"
	"io"

	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const (
	PivotSheet  = "Pivot"
	TotalsSheet = "Totals"

	currencyFormat = `"$"#,##0`
	percentFormat  = `0.00"%"`
)

// WriteWorkbook writes the pivot table and the genre totals of view as an XLSX workbook.
func WriteWorkbook(w io.Writer, view domain.View) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", PivotSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(TotalsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4C78A8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFormat)})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	percent, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(percentFormat)})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	pivotRows := [][]interface{}{append([]interface{}{"Year"}, toInterfaces(view.Grid.Genres)...)}
	for _, row := range view.Grid.Rows {
		values := []interface{}{row.Year}
		for _, g := range view.Grid.Genres {
			values = append(values, row.Cells[g])
		}
		pivotRows = append(pivotRows, values)
	}
	if err := writeRows(f, PivotSheet, pivotRows); err != nil {
		return err
	}

	totalRows := [][]interface{}{{"Genre", "Gross", "Percentage"}}
	for _, t := range view.Totals {
		totalRows = append(totalRows, []interface{}{t.Genre, t.Gross, t.Percentage})
	}
	if err := writeRows(f, TotalsSheet, totalRows); err != nil {
		return err
	}

	lastPivotCol, _ := excelize.ColumnNumberToName(len(view.Grid.Genres) + 1)
	ranges := []styledRange{
		{PivotSheet, "A1", lastPivotCol + "1", header},
		{TotalsSheet, "A1", "C1", header},
	}
	if len(view.Grid.Genres) > 0 && len(view.Grid.Rows) > 0 {
		ranges = append(ranges, styledRange{PivotSheet, "B2", fmt.Sprintf("%s%d", lastPivotCol, len(view.Grid.Rows)+1), currency})
	}
	if n := len(view.Totals); n > 0 {
		ranges = append(ranges,
			styledRange{TotalsSheet, "B2", fmt.Sprintf("B%d", n+1), currency},
			styledRange{TotalsSheet, "C2", fmt.Sprintf("C%d", n+1), percent},
		)
	}
	for _, r := range ranges {
		if err := f.SetCellStyle(r.sheet, r.from, r.to, r.style); err != nil {
			return fmt.Errorf("style %s!%s:%s: %w", r.sheet, r.from, r.to, err)
		}
	}

	if err := f.SetColWidth(PivotSheet, "B", maxCol(lastPivotCol, "B"), 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(TotalsSheet, "A", "C", 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type styledRange struct {
	sheet, from, to string
	style           int
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func toInterfaces(ss []string) []interface{} {
	res := make([]interface{}, len(ss))
	for i, s := range ss {
		res[i] = s
	}
	return res
}

func maxCol(col, floor string) string {
	if len(col) < len(floor) || (len(col) == len(floor) && col < floor) {
		return floor
	}
	return col
}

func strPtr(s string) *string {
	return &s
}

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
)

const (
	ColumnYear  = "year"
	ColumnGenre = "genre"
	ColumnGross = "gross"
)

var (
	ErrMissingFile   = errors.New("dataset file not found")
	ErrMissingColumn = errors.New("dataset column missing")
	ErrParse         = errors.New("dataset parse failure")
)

// ParseCSV reads year/genre/gross records. Columns are matched by header name;
// any other column is ignored.
func ParseCSV(r io.Reader) ([]domain.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrParse)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrParse, err)
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range []string{ColumnYear, ColumnGenre, ColumnGross} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	records := make([]domain.Record, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, idx map[string]int) (domain.Record, error) {
	field := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", fmt.Errorf("column %q: missing value", col)
		}
		return strings.TrimSpace(row[i]), nil
	}

	yearRaw, err := field(ColumnYear)
	if err != nil {
		return domain.Record{}, err
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		// some exports write years as 2001.0
		f, ferr := strconv.ParseFloat(yearRaw, 64)
		if ferr != nil || f != float64(int(f)) {
			return domain.Record{}, fmt.Errorf("column %q: invalid year %q", ColumnYear, yearRaw)
		}
		year = int(f)
	}

	genre, err := field(ColumnGenre)
	if err != nil {
		return domain.Record{}, err
	}
	if genre == "" {
		return domain.Record{}, fmt.Errorf("column %q: empty genre", ColumnGenre)
	}

	grossRaw, err := field(ColumnGross)
	if err != nil {
		return domain.Record{}, err
	}
	gross, err := strconv.ParseFloat(grossRaw, 64)
	if err != nil {
		return domain.Record{}, fmt.Errorf("column %q: invalid amount %q", ColumnGross, grossRaw)
	}
	if math.IsNaN(gross) || math.IsInf(gross, 0) {
		return domain.Record{}, fmt.Errorf("column %q: invalid amount %q", ColumnGross, grossRaw)
	}
	if gross < 0 {
		return domain.Record{}, fmt.Errorf("column %q: negative amount %q", ColumnGross, grossRaw)
	}

	return domain.Record{Year: year, Genre: genre, Gross: gross}, nil
}

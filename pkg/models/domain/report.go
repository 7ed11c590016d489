package domain

// Report represents a complete analysis report
type Report struct {
	Title       string
	Years       YearRange
	Genres      []string
	Sections    []ReportSection
	TotalAmount float64
	Currency    string
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Table   *ReportTable
	Details []ReportDetail
}

// ReportTable is a pre-formatted grid; every row has len(Columns) cells.
type ReportTable struct {
	Columns []string
	Rows    [][]string
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}

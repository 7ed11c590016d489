package domain

import "time"

type ImportStatus string

const (
	ImportStatusPending  ImportStatus = "pending"
	ImportStatusFinished ImportStatus = "finished"
	ImportStatusFailed   ImportStatus = "failed"
)

// ImportRun records one load of a CSV file into the DuckDB store.
type ImportRun struct {
	ID           string
	Source       string
	Status       ImportStatus
	RecordsCount int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Error        *string
}

package store

import "time"

type ImportRun struct {
	ID           string
	Source       string
	Status       string
	RecordsCount int64
	Error        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

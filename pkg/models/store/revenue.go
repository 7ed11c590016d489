package store

import "time"

type RevenueRow struct {
	Year  int
	Genre string
	Gross float64
}

type RevenueStats struct {
	RecordsCount int64
	MinYear      *int
	MaxYear      *int
	LoadedAt     *time.Time
}

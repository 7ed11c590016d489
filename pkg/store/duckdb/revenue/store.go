package revenue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/boxoffice-atlas/pkg/models/store"
	"github.com/de-tools/boxoffice-atlas/pkg/store/duckdb"
)

// Store persists the genre revenue dataset in DuckDB.
// Writes join the transaction carried in ctx, if any (see duckdb.WithTransaction).
type Store interface {
	Add(ctx context.Context, rows []store.RevenueRow) error
	// Replace swaps the whole dataset for rows in a single transaction.
	Replace(ctx context.Context, rows []store.RevenueRow) error
	List(ctx context.Context) ([]store.RevenueRow, error)
	Stats(ctx context.Context) (*store.RevenueStats, error)
}

type revenueStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &revenueStore{
		db: db,
	}, nil
}

func (s *revenueStore) Add(ctx context.Context, rows []store.RevenueRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `INSERT INTO genre_revenue (year, genre, gross) VALUES (?, ?, ?)`

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = s.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}

	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err = stmt.ExecContext(ctx, row.Year, row.Genre, row.Gross)
		if err != nil {
			return fmt.Errorf("insert row (%d, %s): %w", row.Year, row.Genre, err)
		}
	}

	return nil
}

func (s *revenueStore) Replace(ctx context.Context, rows []store.RevenueRow) error {
	return duckdb.InTransaction(ctx, s.db, func(ctx context.Context) error {
		tx := duckdb.GetTransaction(ctx)
		if _, err := tx.ExecContext(ctx, `DELETE FROM genre_revenue`); err != nil {
			return fmt.Errorf("clear revenue: %w", err)
		}
		return s.Add(ctx, rows)
	})
}

func (s *revenueStore) List(ctx context.Context) ([]store.RevenueRow, error) {
	query := `
		SELECT year, genre, gross
		FROM genre_revenue
		ORDER BY year, genre
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query revenue: %w", err)
	}
	defer rows.Close()
	return scanRevenueRows(rows)
}

func (s *revenueStore) Stats(ctx context.Context) (*store.RevenueStats, error) {
	query := `SELECT COUNT(*), MIN(year), MAX(year), MAX(loaded_at) FROM genre_revenue`

	var total int64
	var minYear, maxYear sql.NullInt64
	var loadedAt sql.NullTime
	if err := s.db.QueryRowContext(ctx, query).Scan(&total, &minYear, &maxYear, &loadedAt); err != nil {
		return nil, fmt.Errorf("get revenue stats: %w", err)
	}

	stats := &store.RevenueStats{RecordsCount: total}
	if minYear.Valid && maxYear.Valid {
		lo, hi := int(minYear.Int64), int(maxYear.Int64)
		stats.MinYear, stats.MaxYear = &lo, &hi
	}
	if loadedAt.Valid {
		t := loadedAt.Time.In(time.UTC)
		stats.LoadedAt = &t
	}
	return stats, nil
}

func scanRevenueRows(rows *sql.Rows) ([]store.RevenueRow, error) {
	records := make([]store.RevenueRow, 0)
	for rows.Next() {
		var row store.RevenueRow
		if err := rows.Scan(&row.Year, &row.Genre, &row.Gross); err != nil {
			return nil, err
		}
		records = append(records, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revenue rows: %w", err)
	}
	return records, nil
}

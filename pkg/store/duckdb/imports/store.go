package imports

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/models/store"
	"github.com/google/uuid"
)

// Store keeps the history of CSV imports into the DuckDB dataset.
type Store interface {
	CreateRun(ctx context.Context, source string) (*store.ImportRun, error)
	FinishRun(ctx context.Context, id string, status string, recordsCount int64, runErr *string) error
	ListRuns(ctx context.Context, limit int) ([]*store.ImportRun, error)
}

type defaultStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *defaultStore) CreateRun(ctx context.Context, source string) (*store.ImportRun, error) {
	now := s.now()
	run := &store.ImportRun{
		ID:        uuid.NewString(),
		Source:    source,
		Status:    string(domain.ImportStatusPending),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO import_runs (id, source, status, records_count, created_at, updated_at) VALUES (?, ?, ?, 0, ?, ?)`,
		run.ID, run.Source, run.Status, run.CreatedAt, run.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert import run: %w", err)
	}
	return run, nil
}

func (s *defaultStore) FinishRun(
	ctx context.Context,
	id string,
	status string,
	recordsCount int64,
	runErr *string,
) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE import_runs SET status = ?, records_count = ?, error = ?, updated_at = ? WHERE id = ?`,
		status, recordsCount, runErr, s.now(), id)
	if err != nil {
		return fmt.Errorf("update import run %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update import run %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("import run %s not found", id)
	}
	return nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns all runs.
func (s *defaultStore) ListRuns(ctx context.Context, limit int) ([]*store.ImportRun, error) {
	query := `SELECT id, source, status, records_count, error, created_at, updated_at
		FROM import_runs ORDER BY created_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query import runs: %w", err)
	}
	defer rows.Close()

	runs := []*store.ImportRun{}
	for rows.Next() {
		var run store.ImportRun
		var runErr sql.NullString
		if err := rows.Scan(&run.ID, &run.Source, &run.Status, &run.RecordsCount, &runErr,
			&run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan import run: %w", err)
		}
		if runErr.Valid {
			run.Error = &runErr.String
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate import runs: %w", err)
	}
	return runs, nil
}

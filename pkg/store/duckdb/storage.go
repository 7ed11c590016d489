package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const RevenueTableSchema = `
	CREATE TABLE IF NOT EXISTS genre_revenue (
		year INTEGER NOT NULL,
		genre VARCHAR NOT NULL,
		gross DOUBLE NOT NULL CHECK (gross >= 0),
		loaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const ImportRunsTableSchema = `
	CREATE TABLE IF NOT EXISTS import_runs (
		id VARCHAR PRIMARY KEY,
		source VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		records_count BIGINT NOT NULL DEFAULT 0,
		error VARCHAR,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
`

var bootQueries = []string{
	RevenueTableSchema,
	ImportRunsTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}

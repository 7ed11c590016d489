package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/boxoffice-atlas/pkg/adapters"
	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/services/dataset"
	"github.com/de-tools/boxoffice-atlas/pkg/store/duckdb"
	"github.com/de-tools/boxoffice-atlas/pkg/store/duckdb/imports"
	"github.com/de-tools/boxoffice-atlas/pkg/store/duckdb/revenue"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	csvPath    string
	loadConfig ConfigLoader
}

// NewImportCmd loads a CSV file (local or s3://) into the DuckDB database
// configured as dataset.duckdb_path, replacing its previous contents.
// Every attempt is recorded in the import history.
func NewImportCmd(loadConfig ConfigLoader) *cobra.Command {
	ic := &ImportCmd{loadConfig: loadConfig}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a CSV dataset into the DuckDB store",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.csvPath, "csv", "", "Path or s3:// location of the CSV file")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := ic.loadConfig()
	logger := zerolog.Ctx(ctx)

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Dataset.DuckDBPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	revenueStore, err := revenue.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create revenue store: %w", err)
	}
	importStore, err := imports.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create import store: %w", err)
	}

	run, err := importStore.CreateRun(ctx, ic.csvPath)
	if err != nil {
		return err
	}

	count, importErr := ic.load(ctx, revenueStore)
	status, msg := domain.ImportStatusFinished, (*string)(nil)
	if importErr != nil {
		status = domain.ImportStatusFailed
		text := importErr.Error()
		msg = &text
	}
	if err := importStore.FinishRun(ctx, run.ID, string(status), count, msg); err != nil {
		logger.Error().Err(err).Str("run", run.ID).Msg("failed to record import run")
	}
	if importErr != nil {
		return importErr
	}

	logger.Info().
		Str("run", run.ID).
		Str("csv", ic.csvPath).
		Str("db", cfg.Dataset.DuckDBPath).
		Int64("records", count).
		Msg("dataset imported")

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s\n", count, cfg.Dataset.DuckDBPath)
	return nil
}

func (ic *ImportCmd) load(ctx context.Context, revenueStore revenue.Store) (int64, error) {
	source, closer, err := dataset.NewSource(ctx, dataset.Settings{Kind: dataset.KindCSV, Path: ic.csvPath})
	if err != nil {
		return 0, err
	}
	defer closer.Close()

	records, err := source.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", ic.csvPath, err)
	}
	if err := revenueStore.Replace(ctx, adapters.MapDomainRecordsToStore(records)); err != nil {
		return 0, fmt.Errorf("failed to import records: %w", err)
	}

	stats, err := revenueStore.Stats(ctx)
	if err != nil {
		return 0, err
	}
	return stats.RecordsCount, nil
}

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/de-tools/boxoffice-atlas/pkg/adapters"
	"github.com/de-tools/boxoffice-atlas/pkg/store/duckdb"
	"github.com/de-tools/boxoffice-atlas/pkg/store/duckdb/imports"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func NewHistoryCmd(loadConfig ConfigLoader) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent imports into the DuckDB store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := loadConfig()

			db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Dataset.DuckDBPath})
			if err != nil {
				return fmt.Errorf("failed to create DuckDB instance: %w", err)
			}
			defer db.Close()

			importStore, err := imports.NewStore(db)
			if err != nil {
				return fmt.Errorf("failed to create import store: %w", err)
			}
			runs, err := importStore.ListRuns(ctx, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tSTATUS\tRECORDS\tSOURCE\tERROR")
			for _, run := range adapters.MapStoreImportRunsToDomain(runs) {
				errText := ""
				if run.Error != nil {
					errText = *run.Error
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					run.CreatedAt.Format("2006-01-02 15:04:05"),
					run.Status,
					humanize.Comma(run.RecordsCount),
					run.Source,
					errText)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of runs to show (0 for all)")
	return cmd
}

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/de-tools/boxoffice-atlas/pkg/adapters"
	"github.com/de-tools/boxoffice-atlas/pkg/runtime/app"
	"github.com/de-tools/boxoffice-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	criteria criteriaFlags
	output   string
	open     Opener
	reporter *export.Reporter
}

func NewAnalyzeCmd(open Opener, reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{open: open, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Show gross revenue by year and genre for a selection",
		RunE:  ac.run,
	}

	ac.criteria.bind(cmd)
	cmd.Flags().StringVarP(&ac.output, "output", "o", "table", "Output format: table or json")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	if ac.output != "table" && ac.output != "json" {
		return fmt.Errorf("unsupported output %q. Supported outputs: table, json", ac.output)
	}

	ctx := cmd.Context()
	return withApp(ctx, ac.open, func(a *app.App) error {
		criteria, err := ac.criteria.resolve(ctx, cmd, a)
		if err != nil {
			return err
		}
		view, err := a.Explorer.View(ctx, criteria)
		if err != nil {
			return fmt.Errorf("failed to compute revenue: %w", err)
		}

		if ac.output == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(adapters.MapDomainViewToAPI(*view))
		}
		return ac.reporter.Handle(adapters.MapDomainViewToReport(*view))
	})
}

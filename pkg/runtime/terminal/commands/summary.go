package commands

import (
	"github.com/de-tools/boxoffice-atlas/pkg/runtime/app"
	"github.com/de-tools/boxoffice-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewSummaryCmd(open Opener, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "List the genres and the year range of the dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, open, func(a *app.App) error {
				summary, err := a.Explorer.Summary(ctx)
				if err != nil {
					return err
				}
				return reporter.HandleSummary(summary)
			})
		},
	}
}

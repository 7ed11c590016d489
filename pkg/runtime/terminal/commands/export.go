package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/boxoffice-atlas/pkg/runtime/app"
	"github.com/de-tools/boxoffice-atlas/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const formatXLSX = "xlsx"

type ExportCmd struct {
	criteria criteriaFlags
	format   string
	out      string
	open     Opener
}

func NewExportCmd(open Opener) *cobra.Command {
	ec := &ExportCmd{open: open}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the pivot table as a workbook or the charts as images",
		RunE:  ec.run,
	}

	ec.criteria.bind(cmd)
	cmd.Flags().StringVar(&ec.format, "format", formatXLSX, "Export format: xlsx, png or svg")
	cmd.Flags().StringVar(&ec.out, "out", "", "Output file (xlsx) or directory (png, svg)")

	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	switch ec.format {
	case formatXLSX, string(export.ImagePNG), string(export.ImageSVG):
	default:
		return fmt.Errorf("unsupported format %q. Supported formats: xlsx, png, svg", ec.format)
	}

	ctx := cmd.Context()
	return withApp(ctx, ec.open, func(a *app.App) error {
		criteria, err := ec.criteria.resolve(ctx, cmd, a)
		if err != nil {
			return err
		}
		view, err := a.Explorer.View(ctx, criteria)
		if err != nil {
			return fmt.Errorf("failed to compute revenue: %w", err)
		}

		logger := zerolog.Ctx(ctx)
		if ec.format == formatXLSX {
			f, err := os.Create(ec.out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", ec.out, err)
			}
			if err := export.WriteWorkbook(f, *view); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			logger.Info().Str("path", ec.out).Msg("workbook written")
			fmt.Fprintln(cmd.OutOrStdout(), ec.out)
			return nil
		}

		paths, err := export.WriteImages(ec.out, *view, export.ImageFormat(ec.format))
		if err != nil {
			return err
		}
		for _, p := range paths {
			logger.Info().Str("path", p).Msg("chart written")
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	})
}

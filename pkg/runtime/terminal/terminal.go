package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/boxoffice-atlas/pkg/runtime/app"
	"github.com/de-tools/boxoffice-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/boxoffice-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/boxoffice-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	cfgPath  string
	config   *config.Config
	output   io.Writer
	logs     io.Writer
	open     func(ctx context.Context, cfg *config.Config) (*app.App, error)
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Logs receives diagnostics; reports go to Output.
	Logs io.Writer
	// Open builds the application from the loaded config. Defaults to app.New.
	Open func(ctx context.Context, cfg *config.Config) (*app.App, error)
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}
	if opts.Open == nil {
		opts.Open = app.New
	}

	cli := &CLI{
		output:   opts.Output,
		logs:     opts.Logs,
		open:     opts.Open,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context, args ...string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "boxoffice",
		Short:             "Box office revenue by genre",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setup,
	}
	cmd.SetOut(cli.output)

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "Path to a YAML config file")

	open := func(ctx context.Context) (*app.App, error) {
		return cli.open(ctx, cli.config)
	}
	loadConfig := func() *config.Config {
		return cli.config
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(open, cli.reporter))
	cmd.AddCommand(commands.NewSummaryCmd(open, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(open))
	cmd.AddCommand(commands.NewImportCmd(loadConfig))
	cmd.AddCommand(commands.NewHistoryCmd(loadConfig))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.cfgPath)
	if err != nil {
		return err
	}
	cli.config = cfg

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logs, NoColor: true}).
		Level(cfg.Log.ZerologLevel()).
		With().Timestamp().Logger()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

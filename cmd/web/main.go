package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/boxoffice-atlas/pkg/runtime/app"
	"github.com/de-tools/boxoffice-atlas/pkg/server"
	"github.com/de-tools/boxoffice-atlas/pkg/services/config"
	"github.com/de-tools/boxoffice-atlas/web"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web dashboard for Box Office Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (BOXOFFICE_* environment variables override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.Log.ZerologLevel()).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("dataset could not be loaded")
		return err
	}
	defer application.Close()

	summary, err := application.Explorer.Summary(ctx)
	if err != nil {
		return err
	}
	logger.Info().Msgf("Dataset `%s` loaded: %d records, %d genres, years %d-%d.",
		cfg.Dataset.Path, summary.RecordsCount, len(summary.Genres), summary.Years.Min, summary.Years.Max)

	templates, err := web.ParseTemplates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	webAPI := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Explorer:  application.Explorer,
			Templates: templates,
			Logger:    logger,
		},
	})

	return webAPI.Start()
}

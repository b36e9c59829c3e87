package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appLogger "github.com/FACorreiaa/green-city-pages/app/logger"
	"github.com/FACorreiaa/green-city-pages/app/tracer"
	"github.com/FACorreiaa/green-city-pages/config"
	"github.com/FACorreiaa/green-city-pages/internal/container"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "greencity",
	Short: "Serves and pre-renders per-city green space pages",
	Long: `greencity reads city metrics (location, vegetation health, green space coverage)
from a bundled CSV dataset and serves them per city, falling back to a small
embedded table when the dataset is missing or empty.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yml, ./config/config.yml or the embedded config)")
	rootCmd.PersistentFlags().String("dataset", "public/city_data.csv", "path of the city dataset CSV")
	rootCmd.Flags().String("port", "8000", "HTTP port to listen on")

	rootCmd.AddCommand(serveCmd, pathsCmd, exportCmd)
}

// app bundles what every command needs once configuration is loaded.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	container *container.Container
	shutdown  func(context.Context) error
}

// bootstrap loads .env and configuration, sets up logging, tracing and
// metrics, and wires the container.
func bootstrap(cmd *cobra.Command) (*app, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig(cfgFile, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("error initializing config: %w", err)
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = cfg.Mode
	}
	logger := appLogger.New(env, os.Stderr)
	slog.SetDefault(logger)

	shutdown, err := tracer.InitTracingAndMetrics(cfg.Tracing.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("error initializing tracing: %w", err)
	}

	logger.Debug("Configuration loaded",
		slog.String("dataset", cfg.Dataset.Path),
		slog.Int("overrides", len(cfg.Dataset.Overrides)))

	return &app{
		cfg:       cfg,
		logger:    logger,
		container: container.NewContainer(&cfg, logger),
		shutdown:  shutdown,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.shutdown(ctx); err != nil {
		a.logger.Error("Telemetry shutdown failed", slog.Any("error", err))
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

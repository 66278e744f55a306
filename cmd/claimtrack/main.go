package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/fdalton/claimtrack/internal/cli"
	"github.com/fdalton/claimtrack/internal/config"
	"github.com/fdalton/claimtrack/internal/db"
	"github.com/fdalton/claimtrack/internal/repository"
	"github.com/fdalton/claimtrack/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real config comes from the YAML file and environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.Level())
	defer func() { _ = closeLog() }()
	slog.SetDefault(logger)

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if cfg.NoColor || !interactive {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	estimateRepo := repository.NewSQLiteEstimateRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)
	carrierRepo := repository.NewSQLiteCarrierRepo(database)
	estimatorRepo := repository.NewSQLiteEstimatorRepo(database)
	blockerRepo := repository.NewSQLiteBlockerRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewSlogUseCaseObserver(logger)

	app := &cli.App{
		Estimates:  service.NewEstimateService(estimateRepo, eventRepo, carrierRepo, uow, observer),
		Lifecycle:  service.NewLifecycleService(uow, observer),
		Estimators: service.NewEstimatorService(estimatorRepo),
		Reports:    service.NewReportService(estimateRepo, estimatorRepo, blockerRepo),
		Import:     service.NewImportService(uow, observer),

		DefaultEstimator: cfg.DefaultEstimator,
		Interactive:      interactive,
	}

	return cli.NewRootCmd(app).Execute()
}

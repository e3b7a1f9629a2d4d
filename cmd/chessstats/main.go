package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vytor/chessstats/internal/chesscom"
	"github.com/vytor/chessstats/internal/config"
	"github.com/vytor/chessstats/internal/db"
	"github.com/vytor/chessstats/internal/logger"
	"github.com/vytor/chessstats/internal/outcome"
	"github.com/vytor/chessstats/internal/pacing"
	"github.com/vytor/chessstats/internal/repository/sqlite"
	"github.com/vytor/chessstats/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Debug("base_url=%s", cfg.BaseURL)
	log.Debug("time_class=%q", cfg.TimeClass)
	log.Debug("archive_delay=%v country_delay=%v pacing=%s", cfg.ArchiveDelay, cfg.CountryDelay, cfg.PacingMode)
	log.Debug("output_dir=%s stats_db=%q", cfg.OutputDir, cfg.StatsDBPath)

	username, err := promptUsername(os.Stdin, os.Stdout)
	if err != nil {
		log.Error("failed to read username: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, log)

	if err := run(ctx, cfg, username); err != nil {
		log.Error("export failed: %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, username string) error {
	log := logger.FromContext(ctx)

	// Validate has already accepted both modes.
	archivePacer, _ := pacing.New(cfg.PacingMode, cfg.ArchiveDelay)
	countryPacer, _ := pacing.New(cfg.PacingMode, cfg.CountryDelay)

	client := chesscom.New(
		chesscom.WithBaseURL(cfg.BaseURL),
		chesscom.WithUserAgent(cfg.UserAgent),
		chesscom.WithTimeout(cfg.HTTPTimeout),
	)

	opts := services.ExportOptions{
		OutputDir: cfg.OutputDir,
		Filter:    services.CollectFilter{TimeClass: cfg.TimeClass},
	}
	if cfg.StatsDBPath != "" {
		database, err := db.Open(cfg.StatsDBPath)
		if err != nil {
			return fmt.Errorf("open stats database: %w", err)
		}
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()
		opts.StatsRepo = sqlite.NewStatsRepository(database.DB)
	}

	exporter := services.NewExportService(
		services.NewCollectService(client, archivePacer),
		services.NewStatsService(
			outcome.NewClassifier(cfg.ClassifierTable()),
			services.NewCountryService(client, countryPacer),
		),
		opts,
	)

	sum, err := exporter.Run(ctx, username)
	if err != nil {
		return err
	}
	log.Info("done: %d games, %d rows -> %s, %s", sum.Games, sum.Rows, sum.PGNPath, sum.StatsPath)
	return nil
}

func promptUsername(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter username: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	username := strings.TrimSpace(line)
	if username == "" {
		return "", fmt.Errorf("username cannot be empty")
	}
	return username, nil
}
